package database

import (
	"database/sql"
	"fmt"

	"github.com/dishlist-app/dishlist/models"
)

// SeedDefaults populates an empty tags table with the default dietary tag catalog.
// Config entries are not seeded here; the config service reconciles them against
// data/config.json on first load.
func SeedDefaults(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&count); err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := db.Prepare("INSERT INTO tags (name, category, position) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer stmt.Close()

	for _, category := range models.TagCategories {
		for position, name := range models.DefaultTagGroups[category] {
			if _, err := stmt.Exec(name, category, position); err != nil {
				return fmt.Errorf("failed to seed tag %q: %w", name, err)
			}
		}
	}

	return nil
}
