package models

import (
	"strings"
	"unicode/utf8"
)

// Tag represents a dietary tag that dishes can be labeled with
type Tag struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Position int    `json:"position" db:"position"`
}

// TagGroup holds the tags of one category in display order
type TagGroup struct {
	Category string `json:"category"`
	Tags     []Tag  `json:"tags"`
}

// TagForm represents form data for creating a dietary tag
type TagForm struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Validate validates the tag form data
func (f *TagForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Name) == "" {
		errors = append(errors, "Tag name is required")
	}

	if utf8.RuneCountInString(f.Name) > 120 {
		errors = append(errors, "Tag name must be less than 120 characters")
	}

	if !IsTagCategory(f.Category) {
		errors = append(errors, "Unknown category")
	}

	return errors
}

// TagCategories lists the tag categories in display order.
var TagCategories = []string{
	"Dietary patterns",
	"Ingredient avoidances",
	"Preparation and cross-contact",
	"Additives and content",
	"Spice and suitability",
	"Serving logistics",
}

var tagCategoryRank = func() map[string]int {
	rank := make(map[string]int, len(TagCategories))
	for i, category := range TagCategories {
		rank[category] = i
	}
	return rank
}()

// IsTagCategory reports whether category is part of the fixed catalog
func IsTagCategory(category string) bool {
	_, ok := tagCategoryRank[category]
	return ok
}

// TagCategoryRank returns the sort rank of a category; unknown categories sort last
func TagCategoryRank(category string) int {
	if rank, ok := tagCategoryRank[category]; ok {
		return rank
	}
	return len(TagCategories)
}

// DefaultTagGroups is the tag catalog seeded into an empty database.
var DefaultTagGroups = map[string][]string{
	"Dietary patterns": {
		"Vegan",
		"Vegetarian",
		"Vegetarian but not vegan (contains eggs/honey)",
		"Pescatarian",
		"Kosher",
		"Halal",
		"Keto",
		"Paleo",
		"Whole30",
		"Low-FODMAP",
		"Low-carb",
		"Low-sodium",
		"Low-sugar/Diabetic-friendly",
	},
	"Ingredient avoidances": {
		"Gluten-Free",
		"Dairy-Free",
		"Lactose-free (distinct from dairy-free)",
		"Peanut-free",
		"Tree-nut-free",
		"Egg-free",
		"Soy-free",
		"Sesame-free",
		"Shellfish-free",
		"Fish-free",
		"Corn-free",
		"Nightshade-free",
		"Onion-free",
		"Garlic-free",
	},
	"Preparation and cross-contact": {
		"Prepared in GF kitchen",
		"Shared fryer/oil",
		"Separate utensils used",
		"May contain trace allergens",
		"Contains pork/beef",
		"Gelatin present",
	},
	"Additives and content": {
		"Contains alcohol",
		"Caffeine present (e.g., tiramisu/coffee desserts)",
		"Artificial sweeteners",
		"MSG added",
	},
	"Spice and suitability": {
		"Mild heat",
		"Medium heat",
		"Spicy heat",
		"Kid-friendly",
	},
	"Serving logistics": {
		"Requires reheating",
		"Keep chilled",
		"Contains raw/undercooked ingredients (e.g., cured fish/meat)",
		"Shelf-stable",
	},
}
