package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dishlist-app/dishlist/models"
)

const (
	configCategoryDishType     = "dish_type"
	configCategoryAdminNetwork = "admin_network"
)

// ConfigRepository persists the admin config as ordered rows in SQLite
type ConfigRepository interface {
	// Load returns the stored config and its latest update time, or nil when
	// no config rows exist yet.
	Load() (*models.AppConfig, time.Time, error)
	Save(cfg models.AppConfig) error
}

// configRepository implements ConfigRepository interface
type configRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *sql.DB) ConfigRepository {
	return &configRepository{db: db}
}

// Load fetches the dish types and admin networks in stored order
func (r *configRepository) Load() (*models.AppConfig, time.Time, error) {
	dishTypes, dishUpdated, err := r.loadCategory(configCategoryDishType)
	if err != nil {
		return nil, time.Time{}, err
	}

	networks, networksUpdated, err := r.loadCategory(configCategoryAdminNetwork)
	if err != nil {
		return nil, time.Time{}, err
	}

	if len(dishTypes) == 0 && len(networks) == 0 {
		return nil, time.Time{}, nil
	}

	updatedAt := dishUpdated
	if networksUpdated.After(updatedAt) {
		updatedAt = networksUpdated
	}

	return &models.AppConfig{DishTypes: dishTypes, AdminNetworks: networks}, updatedAt, nil
}

// Save replaces both config categories in one transaction
func (r *configRepository) Save(cfg models.AppConfig) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin config save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM config_entries WHERE category IN (?, ?)",
		configCategoryDishType, configCategoryAdminNetwork,
	)
	if err != nil {
		return fmt.Errorf("failed to clear config entries: %w", err)
	}

	now := time.Now().UTC()
	if err := insertCategory(tx, configCategoryDishType, cfg.DishTypes, now); err != nil {
		return err
	}
	if err := insertCategory(tx, configCategoryAdminNetwork, cfg.AdminNetworks, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit config save: %w", err)
	}

	return nil
}

func (r *configRepository) loadCategory(category string) ([]string, time.Time, error) {
	query := `
		SELECT value, updated_at
		FROM config_entries
		WHERE category = ?
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.Query(query, category)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query config entries: %w", err)
	}
	defer rows.Close()

	var values []string
	var latest time.Time
	for rows.Next() {
		var value string
		var updatedAt time.Time
		if err := rows.Scan(&value, &updatedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan config entry: %w", err)
		}
		values = append(values, value)
		if updatedAt.After(latest) {
			latest = updatedAt
		}
	}

	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("error iterating config entries: %w", err)
	}

	return values, latest, nil
}

func insertCategory(tx *sql.Tx, category string, values []string, now time.Time) error {
	for position, value := range values {
		_, err := tx.Exec(
			"INSERT INTO config_entries (category, value, position, updated_at) VALUES (?, ?, ?, ?)",
			category, value, position, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert config entry %q: %w", value, err)
		}
	}
	return nil
}
