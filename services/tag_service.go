package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories"
)

// TagService interface defines dietary tag business logic
type TagService interface {
	GetTagGroups() ([]models.TagGroup, error)
	GetCategories() []string
	CreateTag(form *models.TagForm) (*models.Tag, error)
	DeleteTag(id int) error
}

// tagService implements TagService interface
type tagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new tag service
func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// GetTagGroups returns all tags grouped by category in catalog order. Tags in
// categories outside the catalog (from older data) trail in alphabetical order.
func (s *tagService) GetTagGroups() ([]models.TagGroup, error) {
	tags, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, err
	}
	sortTags(tags)

	grouped := make(map[string][]models.Tag)
	for _, tag := range tags {
		grouped[tag.Category] = append(grouped[tag.Category], tag)
	}

	var groups []models.TagGroup
	for _, category := range models.TagCategories {
		if bucket, ok := grouped[category]; ok {
			groups = append(groups, models.TagGroup{Category: category, Tags: bucket})
			delete(grouped, category)
		}
	}

	var leftover []string
	for category := range grouped {
		leftover = append(leftover, category)
	}
	sort.Strings(leftover)
	for _, category := range leftover {
		groups = append(groups, models.TagGroup{Category: category, Tags: grouped[category]})
	}

	return groups, nil
}

// GetCategories returns the fixed category catalog
func (s *tagService) GetCategories() []string {
	return models.TagCategories
}

// CreateTag validates and persists a new tag at the end of its category
func (s *tagService) CreateTag(form *models.TagForm) (*models.Tag, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Category = strings.TrimSpace(form.Category)

	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	if existing, err := s.tagRepo.GetByName(form.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("that tag already exists")
	}

	maxPosition, err := s.tagRepo.MaxPosition(form.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to determine tag position: %w", err)
	}

	tag := &models.Tag{
		Name:     form.Name,
		Category: form.Category,
		Position: maxPosition + 1,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// DeleteTag removes a tag; dishes keep their other tags
func (s *tagService) DeleteTag(id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid tag ID: %d", id)
	}
	return s.tagRepo.Delete(id)
}

// sortTags orders tags by catalog category rank, then position, then name
func sortTags(tags []models.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		ri, rj := models.TagCategoryRank(tags[i].Category), models.TagCategoryRank(tags[j].Category)
		if ri != rj {
			return ri < rj
		}
		if tags[i].Position != tags[j].Position {
			return tags[i].Position < tags[j].Position
		}
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
}
