package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DishEntry represents one guest's potluck submission
type DishEntry struct {
	ID           int       `json:"id" db:"id"`
	Contributor  string    `json:"contributor" db:"contributor"`
	DishName     string    `json:"dish_name" db:"dish_name"`
	DishType     string    `json:"dish_type" db:"dish_type"`
	Allergens    []string  `json:"allergens" db:"allergens"`
	DietaryFlags []string  `json:"dietary_flags" db:"dietary_flags"`
	TagIDs       []int     `json:"tag_ids"`
	Tags         []Tag     `json:"tags"`
	Notes        string    `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DishForm represents form data for creating/updating dish submissions
type DishForm struct {
	Contributor string `json:"contributor"`
	DishName    string `json:"dish_name"`
	DishType    string `json:"dish_type"`
	Allergens   string `json:"allergens"`
	Notes       string `json:"notes"`
	TagIDs      []int  `json:"tag_ids"`
}

// Validate validates the dish form data
func (f *DishForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Contributor) == "" {
		errors = append(errors, "Your name is required")
	}

	if utf8.RuneCountInString(f.Contributor) > 80 {
		errors = append(errors, "Your name must be less than 80 characters")
	}

	if strings.TrimSpace(f.DishName) == "" {
		errors = append(errors, "Dish name is required")
	}

	if utf8.RuneCountInString(f.DishName) > 120 {
		errors = append(errors, "Dish name must be less than 120 characters")
	}

	if f.DishType == "" {
		errors = append(errors, "Dish type is required")
	}

	return errors
}

// ParseAllergens splits a comma-separated allergen string into clean chunks
func ParseAllergens(raw string) []string {
	if raw == "" {
		return nil
	}

	var allergens []string
	for _, chunk := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			allergens = append(allergens, trimmed)
		}
	}
	return allergens
}

// NormalizeTagIDs removes duplicate tag IDs while preserving order
func NormalizeTagIDs(ids []int) []int {
	seen := make(map[int]bool)
	var normalized []int
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		normalized = append(normalized, id)
	}
	return normalized
}
