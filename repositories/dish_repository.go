package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dishlist-app/dishlist/models"
)

// DishRepository interface defines dish submission database operations
type DishRepository interface {
	GetAll() ([]models.DishEntry, error)
	GetByID(id int) (*models.DishEntry, error)
	Create(entry *models.DishEntry) error
	Update(entry *models.DishEntry) error
	Delete(id int) error
	Count() (int, error)
}

// dishRepository implements DishRepository interface
type dishRepository struct {
	db *sql.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *sql.DB) DishRepository {
	return &dishRepository{db: db}
}

// GetAll retrieves all dish submissions, newest first
func (r *dishRepository) GetAll() ([]models.DishEntry, error) {
	query := `
		SELECT id, contributor, dish_name, dish_type, allergens, dietary_flags, notes, created_at
		FROM dishes
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	var dishes []models.DishEntry
	for rows.Next() {
		entry, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	if err := r.attachTags(dishes); err != nil {
		return nil, err
	}

	return dishes, nil
}

// GetByID retrieves a dish submission by ID
func (r *dishRepository) GetByID(id int) (*models.DishEntry, error) {
	query := `
		SELECT id, contributor, dish_name, dish_type, allergens, dietary_flags, notes, created_at
		FROM dishes
		WHERE id = ?
	`

	row := r.db.QueryRow(query, id)
	entry, err := scanDish(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dish with ID %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	dishes := []models.DishEntry{*entry}
	if err := r.attachTags(dishes); err != nil {
		return nil, err
	}

	return &dishes[0], nil
}

// Create creates a new dish submission with its tag links
func (r *dishRepository) Create(entry *models.DishEntry) error {
	query := `
		INSERT INTO dishes (contributor, dish_name, dish_type, allergens, dietary_flags, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	allergens, flags, err := marshalDishLists(entry)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin dish create: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(query,
		entry.Contributor,
		entry.DishName,
		entry.DishType,
		allergens,
		flags,
		nullableNotes(entry.Notes),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	if err := replaceTags(tx, int(id), entry.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dish create: %w", err)
	}

	entry.ID = int(id)
	return nil
}

// Update updates an existing dish submission and its tag links
func (r *dishRepository) Update(entry *models.DishEntry) error {
	query := `
		UPDATE dishes
		SET contributor = ?, dish_name = ?, dish_type = ?,
		    allergens = ?, dietary_flags = ?, notes = ?
		WHERE id = ?
	`

	allergens, flags, err := marshalDishLists(entry)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin dish update: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(query,
		entry.Contributor,
		entry.DishName,
		entry.DishType,
		allergens,
		flags,
		nullableNotes(entry.Notes),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("dish with ID %d not found", entry.ID)
	}

	if err := replaceTags(tx, entry.ID, entry.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dish update: %w", err)
	}

	return nil
}

// Delete deletes a dish submission by ID; tag links go with it via cascade
func (r *dishRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM dishes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("dish with ID %d not found", id)
	}

	return nil
}

// Count returns the total number of dish submissions
func (r *dishRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM dishes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return count, nil
}

// replaceTags rewrites the dish_tags links for a dish inside the caller's
// transaction, so a failed link rolls back the dish row with it.
func replaceTags(tx *sql.Tx, dishID int, tagIDs []int) error {
	if _, err := tx.Exec("DELETE FROM dish_tags WHERE dish_id = ?", dishID); err != nil {
		return fmt.Errorf("failed to clear dish tags: %w", err)
	}

	for _, tagID := range models.NormalizeTagIDs(tagIDs) {
		if _, err := tx.Exec("INSERT INTO dish_tags (dish_id, tag_id) VALUES (?, ?)", dishID, tagID); err != nil {
			return fmt.Errorf("failed to link tag %d to dish %d: %w", tagID, dishID, err)
		}
	}

	return nil
}

// attachTags loads tag rows for the given dishes in one query and fills in
// Tags, TagIDs and DietaryFlags.
func (r *dishRepository) attachTags(dishes []models.DishEntry) error {
	if len(dishes) == 0 {
		return nil
	}

	placeholders := make([]string, len(dishes))
	args := make([]interface{}, len(dishes))
	for i, dish := range dishes {
		placeholders[i] = "?"
		args[i] = dish.ID
	}

	query := fmt.Sprintf(`
		SELECT dt.dish_id, t.id, t.name, t.category, t.position
		FROM dish_tags AS dt
		JOIN tags AS t ON t.id = dt.tag_id
		WHERE dt.dish_id IN (%s)
		ORDER BY t.category, t.position, LOWER(t.name)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to query dish tags: %w", err)
	}
	defer rows.Close()

	tagsByDish := make(map[int][]models.Tag)
	for rows.Next() {
		var dishID int
		var tag models.Tag
		if err := rows.Scan(&dishID, &tag.ID, &tag.Name, &tag.Category, &tag.Position); err != nil {
			return fmt.Errorf("failed to scan dish tag: %w", err)
		}
		tagsByDish[dishID] = append(tagsByDish[dishID], tag)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating dish tags: %w", err)
	}

	for i := range dishes {
		tags := tagsByDish[dishes[i].ID]
		if len(tags) == 0 {
			continue
		}
		dishes[i].Tags = tags
		dishes[i].TagIDs = make([]int, len(tags))
		dishes[i].DietaryFlags = make([]string, len(tags))
		for j, tag := range tags {
			dishes[i].TagIDs[j] = tag.ID
			dishes[i].DietaryFlags[j] = tag.Name
		}
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDish(s scanner) (*models.DishEntry, error) {
	var entry models.DishEntry
	var allergens, flags string
	var notes sql.NullString

	err := s.Scan(
		&entry.ID,
		&entry.Contributor,
		&entry.DishName,
		&entry.DishType,
		&allergens,
		&flags,
		&notes,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan dish: %w", err)
	}

	if err := json.Unmarshal([]byte(allergens), &entry.Allergens); err != nil {
		return nil, fmt.Errorf("failed to decode allergens: %w", err)
	}
	if err := json.Unmarshal([]byte(flags), &entry.DietaryFlags); err != nil {
		return nil, fmt.Errorf("failed to decode dietary flags: %w", err)
	}
	if notes.Valid {
		entry.Notes = notes.String
	}

	return &entry, nil
}

func marshalDishLists(entry *models.DishEntry) (string, string, error) {
	allergens, err := json.Marshal(emptyIfNil(entry.Allergens))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode allergens: %w", err)
	}
	flags, err := json.Marshal(emptyIfNil(entry.DietaryFlags))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode dietary flags: %w", err)
	}
	return string(allergens), string(flags), nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullableNotes(notes string) sql.NullString {
	return sql.NullString{String: notes, Valid: notes != ""}
}
