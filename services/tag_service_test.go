package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories/mocks"
)

func TestGetTagGroups_OrdersByCatalog(t *testing.T) {
	mockRepo := new(mocks.MockTagRepository)
	mockRepo.On("GetAll").Return([]models.Tag{
		{ID: 1, Name: "Keep chilled", Category: "Serving logistics", Position: 1},
		{ID: 2, Name: "Vegan", Category: "Dietary patterns", Position: 0},
		{ID: 3, Name: "Requires reheating", Category: "Serving logistics", Position: 0},
		{ID: 4, Name: "Legacy tag", Category: "Retired category", Position: 0},
	}, nil)

	service := NewTagService(mockRepo)
	groups, err := service.GetTagGroups()

	assert.NoError(t, err)
	assert.Len(t, groups, 3)
	assert.Equal(t, "Dietary patterns", groups[0].Category)
	assert.Equal(t, "Serving logistics", groups[1].Category)
	// Categories outside the catalog trail the known ones
	assert.Equal(t, "Retired category", groups[2].Category)

	// Position ordering within a category
	assert.Equal(t, "Requires reheating", groups[1].Tags[0].Name)
	assert.Equal(t, "Keep chilled", groups[1].Tags[1].Name)
}

func TestCreateTag_AppendsToCategory(t *testing.T) {
	mockRepo := new(mocks.MockTagRepository)
	mockRepo.On("GetByName", "Nut-free").Return(nil, errors.New("tag not found"))
	mockRepo.On("MaxPosition", "Ingredient avoidances").Return(13, nil)
	mockRepo.On("Create", mock.AnythingOfType("*models.Tag")).Return(nil)

	service := NewTagService(mockRepo)
	tag, err := service.CreateTag(&models.TagForm{Name: "  Nut-free ", Category: "Ingredient avoidances"})

	assert.NoError(t, err)
	assert.Equal(t, "Nut-free", tag.Name)
	assert.Equal(t, 14, tag.Position)
	mockRepo.AssertExpectations(t)
}

func TestCreateTag_Duplicate(t *testing.T) {
	mockRepo := new(mocks.MockTagRepository)
	mockRepo.On("GetByName", "Vegan").Return(&models.Tag{ID: 1, Name: "Vegan"}, nil)

	service := NewTagService(mockRepo)
	tag, err := service.CreateTag(&models.TagForm{Name: "Vegan", Category: "Dietary patterns"})

	assert.Error(t, err)
	assert.Nil(t, tag)
	assert.Contains(t, err.Error(), "already exists")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateTag_UnknownCategory(t *testing.T) {
	mockRepo := new(mocks.MockTagRepository)

	service := NewTagService(mockRepo)
	tag, err := service.CreateTag(&models.TagForm{Name: "Fancy", Category: "Made up"})

	assert.Error(t, err)
	assert.Nil(t, tag)
	assert.Contains(t, err.Error(), "Unknown category")
}

func TestDeleteTag_InvalidID(t *testing.T) {
	service := NewTagService(new(mocks.MockTagRepository))

	assert.Error(t, service.DeleteTag(0))
}
