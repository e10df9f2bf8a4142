package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dishlist-app/dishlist/models"
)

// TagRepository interface defines dietary tag database operations
type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetByIDs(ids []int) ([]models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	Create(tag *models.Tag) error
	Delete(id int) error
	MaxPosition(category string) (int, error)
}

// tagRepository implements TagRepository interface
type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetAll retrieves all dietary tags
func (r *tagRepository) GetAll() ([]models.Tag, error) {
	rows, err := r.db.Query("SELECT id, name, category, position FROM tags")
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// GetByIDs retrieves the tags matching the given IDs; missing IDs are simply absent
func (r *tagRepository) GetByIDs(ids []int) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT id, name, category, position FROM tags WHERE id IN (%s)",
		strings.Join(placeholders, ","),
	)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by IDs: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// GetByName retrieves a tag by case-insensitive name match
func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	query := "SELECT id, name, category, position FROM tags WHERE LOWER(name) = LOWER(?)"

	var tag models.Tag
	err := r.db.QueryRow(query, name).Scan(&tag.ID, &tag.Name, &tag.Category, &tag.Position)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}

	return &tag, nil
}

// Create inserts a new tag
func (r *tagRepository) Create(tag *models.Tag) error {
	result, err := r.db.Exec(
		"INSERT INTO tags (name, category, position) VALUES (?, ?, ?)",
		tag.Name, tag.Category, tag.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}
	tag.ID = int(id)

	return nil
}

// Delete deletes a tag by ID; dish links go with it via cascade
func (r *tagRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tag with ID %d not found", id)
	}

	return nil
}

// MaxPosition returns the highest position within a category, or -1 when empty
func (r *tagRepository) MaxPosition(category string) (int, error) {
	var max int
	query := "SELECT COALESCE(MAX(position), -1) FROM tags WHERE category = ?"
	if err := r.db.QueryRow(query, category).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max tag position: %w", err)
	}
	return max, nil
}

func collectTags(rows *sql.Rows) ([]models.Tag, error) {
	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Category, &tag.Position); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}
