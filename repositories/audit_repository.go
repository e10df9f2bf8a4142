package repositories

import (
	"database/sql"
	"time"

	"github.com/dishlist-app/dishlist/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(entry *models.AuditLogEntry) error
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *sqliteAuditRepository) Create(entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (timestamp, client_ip, method, path, form_data, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		time.Now().UTC(),
		entry.ClientIP,
		entry.Method,
		entry.Path,
		entry.FormData,
		entry.UserAgent,
	)

	return err
}
