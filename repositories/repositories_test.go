package repositories

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/dishlist-app/dishlist/database"
	"github.com/dishlist-app/dishlist/models"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
	})

	// Initialize test database using the actual migration system
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return database.GetDB()
}

func seededTagIDs(t *testing.T, repo TagRepository, count int) []int {
	tags, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Failed to load seeded tags: %v", err)
	}
	if len(tags) < count {
		t.Fatalf("Expected at least %d seeded tags, got %d", count, len(tags))
	}

	ids := make([]int, count)
	for i := 0; i < count; i++ {
		ids[i] = tags[i].ID
	}
	return ids
}

func TestDishRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	tagIDs := seededTagIDs(t, NewTagRepository(db), 2)

	// Test Create
	entry := &models.DishEntry{
		Contributor:  "Marta",
		DishName:     "Lentil Stew",
		DishType:     "Main Dish",
		Allergens:    []string{"celery"},
		DietaryFlags: []string{"Vegan"},
		TagIDs:       tagIDs,
		Notes:        "Bring a ladle",
	}

	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}
	if entry.ID == 0 {
		t.Error("Expected dish ID to be set after creation")
	}

	// Test GetByID with tag links
	retrieved, err := repo.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get dish by ID: %v", err)
	}
	if retrieved.DishName != entry.DishName {
		t.Errorf("Expected dish name %s, got %s", entry.DishName, retrieved.DishName)
	}
	if len(retrieved.TagIDs) != 2 {
		t.Errorf("Expected 2 linked tags, got %d", len(retrieved.TagIDs))
	}
	if len(retrieved.DietaryFlags) != 2 {
		t.Errorf("Expected dietary flags from tag links, got %v", retrieved.DietaryFlags)
	}
	if retrieved.Notes != "Bring a ladle" {
		t.Errorf("Expected notes to round-trip, got %q", retrieved.Notes)
	}

	// Test GetAll ordering (newest first)
	second := &models.DishEntry{
		Contributor: "Ben",
		DishName:    "Cornbread",
		DishType:    "Side Dish",
		CreatedAt:   time.Now().UTC().Add(time.Minute),
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Failed to create second dish: %v", err)
	}

	dishes, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Failed to get all dishes: %v", err)
	}
	if len(dishes) != 2 {
		t.Fatalf("Expected 2 dishes, got %d", len(dishes))
	}
	if dishes[0].ID != second.ID {
		t.Errorf("Expected newest dish first, got ID %d", dishes[0].ID)
	}

	// Test Update
	entry.DishName = "Spicy Lentil Stew"
	entry.TagIDs = tagIDs[:1]
	if err := repo.Update(entry); err != nil {
		t.Fatalf("Failed to update dish: %v", err)
	}

	updated, err := repo.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get updated dish: %v", err)
	}
	if updated.DishName != "Spicy Lentil Stew" {
		t.Errorf("Expected updated name, got %s", updated.DishName)
	}
	if len(updated.TagIDs) != 1 {
		t.Errorf("Expected tag links to be replaced, got %v", updated.TagIDs)
	}

	// Test Count
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Failed to count dishes: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}

	// Test Delete
	if err := repo.Delete(entry.ID); err != nil {
		t.Fatalf("Failed to delete dish: %v", err)
	}
	if _, err := repo.GetByID(entry.ID); err == nil {
		t.Error("Expected error when getting deleted dish")
	}

	// Deleting again reports not found
	if err := repo.Delete(entry.ID); err == nil {
		t.Error("Expected error when deleting missing dish")
	}
}

func TestDishRepository_FailedTagLinkRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	tagIDs := seededTagIDs(t, NewTagRepository(db), 1)

	// A tag ID with no tags row trips the foreign key and must leave no dish behind
	entry := &models.DishEntry{
		Contributor: "Marta",
		DishName:    "Lentil Stew",
		DishType:    "Main Dish",
		TagIDs:      []int{99999},
	}
	if err := repo.Create(entry); err == nil {
		t.Fatal("Expected create to fail on unknown tag link")
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Failed to count dishes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no dish row after failed create, got %d", count)
	}

	// Same on update: the dish row and its links stay as they were
	entry = &models.DishEntry{
		Contributor: "Marta",
		DishName:    "Lentil Stew",
		DishType:    "Main Dish",
		TagIDs:      tagIDs,
	}
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}

	entry.DishName = "Renamed Stew"
	entry.TagIDs = []int{99999}
	if err := repo.Update(entry); err == nil {
		t.Fatal("Expected update to fail on unknown tag link")
	}

	retrieved, err := repo.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get dish after failed update: %v", err)
	}
	if retrieved.DishName != "Lentil Stew" {
		t.Errorf("Expected dish name unchanged after rollback, got %q", retrieved.DishName)
	}
	if len(retrieved.TagIDs) != 1 || retrieved.TagIDs[0] != tagIDs[0] {
		t.Errorf("Expected tag links unchanged after rollback, got %v", retrieved.TagIDs)
	}
}

func TestTagRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)

	// Seeded catalog is present
	tags, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Failed to get all tags: %v", err)
	}
	if len(tags) == 0 {
		t.Fatal("Expected seeded tags")
	}

	// Test MaxPosition and Create
	maxPos, err := repo.MaxPosition("Spice and suitability")
	if err != nil {
		t.Fatalf("Failed to get max position: %v", err)
	}

	tag := &models.Tag{Name: "Extra spicy", Category: "Spice and suitability", Position: maxPos + 1}
	if err := repo.Create(tag); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if tag.ID == 0 {
		t.Error("Expected tag ID to be set after creation")
	}

	// Test GetByName case-insensitive
	found, err := repo.GetByName("EXTRA SPICY")
	if err != nil {
		t.Fatalf("Failed to get tag by name: %v", err)
	}
	if found.ID != tag.ID {
		t.Errorf("Expected tag ID %d, got %d", tag.ID, found.ID)
	}

	// Test GetByIDs skips unknown IDs
	byIDs, err := repo.GetByIDs([]int{tag.ID, 99999})
	if err != nil {
		t.Fatalf("Failed to get tags by IDs: %v", err)
	}
	if len(byIDs) != 1 {
		t.Errorf("Expected 1 tag for mixed known/unknown IDs, got %d", len(byIDs))
	}

	// Test Delete
	if err := repo.Delete(tag.ID); err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}
	if _, err := repo.GetByName("Extra spicy"); err == nil {
		t.Error("Expected error when getting deleted tag")
	}
}

func TestTagDeleteCascadesDishLinks(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	dishRepo := NewDishRepository(db)

	tagIDs := seededTagIDs(t, tagRepo, 1)
	entry := &models.DishEntry{
		Contributor: "Noor",
		DishName:    "Fruit Salad",
		DishType:    "Dessert",
		TagIDs:      tagIDs,
	}
	if err := dishRepo.Create(entry); err != nil {
		t.Fatalf("Failed to create dish: %v", err)
	}

	if err := tagRepo.Delete(tagIDs[0]); err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}

	retrieved, err := dishRepo.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get dish after tag delete: %v", err)
	}
	if len(retrieved.TagIDs) != 0 {
		t.Errorf("Expected dish tag links removed by cascade, got %v", retrieved.TagIDs)
	}
}

func TestConfigRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigRepository(db)

	// Empty database has no config
	cfg, _, err := repo.Load()
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}
	if cfg != nil {
		t.Errorf("Expected nil config from empty table, got %+v", cfg)
	}

	// Save and reload preserving order
	saved := models.AppConfig{
		DishTypes:     []string{"Main Dish", "Dessert", "Beverage"},
		AdminNetworks: []string{"10.0.0.0/8", "127.0.0.1/32"},
	}
	if err := repo.Save(saved); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, updatedAt, err := repo.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected config after save")
	}
	if !loaded.Equal(saved) {
		t.Errorf("Expected %+v, got %+v", saved, *loaded)
	}
	if updatedAt.IsZero() {
		t.Error("Expected a non-zero updated time")
	}

	// Saving again replaces the previous rows
	replacement := models.AppConfig{
		DishTypes:     []string{"Main Dish"},
		AdminNetworks: []string{"192.168.1.0/24"},
	}
	if err := repo.Save(replacement); err != nil {
		t.Fatalf("Failed to replace config: %v", err)
	}

	loaded, _, err = repo.Load()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if !loaded.Equal(replacement) {
		t.Errorf("Expected %+v, got %+v", replacement, *loaded)
	}
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)

	entry := &models.AuditLogEntry{
		ClientIP:  "127.0.0.1",
		Method:    "POST",
		Path:      "/pantry-admin/tags",
		FormData:  `{"tag_name":"Nut-free"}`,
		UserAgent: "test-agent",
	}
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create audit entry: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&count); err != nil {
		t.Fatalf("Failed to count audit rows: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 audit row, got %d", count)
	}
}
