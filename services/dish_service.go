package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories"
)

// DishService interface defines dish submission business logic
type DishService interface {
	ListDishes(search string) ([]models.DishEntry, error)
	GetDish(id int) (*models.DishEntry, error)
	CreateDish(form *models.DishForm) (*models.DishEntry, error)
	UpdateDish(id int, form *models.DishForm) (*models.DishEntry, error)
	DeleteDish(id int) error
	CountDishes() (int, error)
}

// dishService implements DishService interface
type dishService struct {
	dishRepo repositories.DishRepository
	tagRepo  repositories.TagRepository
	config   ConfigService
}

// NewDishService creates a new dish service
func NewDishService(dishRepo repositories.DishRepository, tagRepo repositories.TagRepository, config ConfigService) DishService {
	return &dishService{
		dishRepo: dishRepo,
		tagRepo:  tagRepo,
		config:   config,
	}
}

// ListDishes retrieves all dishes, optionally filtered by a search query
func (s *dishService) ListDishes(search string) ([]models.DishEntry, error) {
	dishes, err := s.dishRepo.GetAll()
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return dishes, nil
	}

	var filtered []models.DishEntry
	for _, dish := range dishes {
		if matchesSearch(dish, query) {
			filtered = append(filtered, dish)
		}
	}
	return filtered, nil
}

// GetDish retrieves a dish by ID
func (s *dishService) GetDish(id int) (*models.DishEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid dish ID: %d", id)
	}
	return s.dishRepo.GetByID(id)
}

// CreateDish validates and persists a new submission
func (s *dishService) CreateDish(form *models.DishForm) (*models.DishEntry, error) {
	entry, err := s.buildEntry(form)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = time.Now().UTC()
	if err := s.dishRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	return entry, nil
}

// UpdateDish validates and persists changes to an existing submission
func (s *dishService) UpdateDish(id int, form *models.DishForm) (*models.DishEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid dish ID: %d", id)
	}

	existing, err := s.dishRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("dish not found: %w", err)
	}

	entry, err := s.buildEntry(form)
	if err != nil {
		return nil, err
	}

	entry.ID = id
	entry.CreatedAt = existing.CreatedAt
	if err := s.dishRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	return entry, nil
}

// DeleteDish removes a submission
func (s *dishService) DeleteDish(id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid dish ID: %d", id)
	}

	if _, err := s.dishRepo.GetByID(id); err != nil {
		return fmt.Errorf("dish not found: %w", err)
	}

	if err := s.dishRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	return nil
}

// CountDishes returns the total number of submissions
func (s *dishService) CountDishes() (int, error) {
	return s.dishRepo.Count()
}

// buildEntry validates the form against the current config and tag catalog and
// assembles a dish entry from it.
func (s *dishService) buildEntry(form *models.DishForm) (*models.DishEntry, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	cfg, err := s.config.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !slices.Contains(cfg.DishTypes, form.DishType) {
		return nil, fmt.Errorf("unknown dish type: %s", form.DishType)
	}

	tagIDs := models.NormalizeTagIDs(form.TagIDs)
	tags, err := s.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dietary tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return nil, fmt.Errorf("unknown dietary tag selected")
	}
	sortTags(tags)

	entry := &models.DishEntry{
		Contributor: strings.TrimSpace(form.Contributor),
		DishName:    strings.TrimSpace(form.DishName),
		DishType:    form.DishType,
		Allergens:   models.ParseAllergens(form.Allergens),
		Notes:       strings.TrimSpace(form.Notes),
		Tags:        tags,
	}
	for _, tag := range tags {
		entry.TagIDs = append(entry.TagIDs, tag.ID)
		entry.DietaryFlags = append(entry.DietaryFlags, tag.Name)
	}

	return entry, nil
}

// matchesSearch reports whether a dish matches a lowercased search query
func matchesSearch(dish models.DishEntry, query string) bool {
	chunks := []string{
		dish.DishName,
		dish.Contributor,
		dish.DishType,
		dish.Notes,
		strings.Join(dish.Allergens, ", "),
		strings.Join(dish.DietaryFlags, ", "),
	}

	for _, chunk := range chunks {
		if chunk != "" && strings.Contains(strings.ToLower(chunk), query) {
			return true
		}
	}
	return false
}
