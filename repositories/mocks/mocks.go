// Package mocks provides testify mocks for the repository interfaces,
// used by the service test suites.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dishlist-app/dishlist/models"
)

// MockDishRepository is a testify mock for repositories.DishRepository
type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) GetAll() ([]models.DishEntry, error) {
	args := m.Called()
	var dishes []models.DishEntry
	if args.Get(0) != nil {
		dishes = args.Get(0).([]models.DishEntry)
	}
	return dishes, args.Error(1)
}

func (m *MockDishRepository) GetByID(id int) (*models.DishEntry, error) {
	args := m.Called(id)
	var dish *models.DishEntry
	if args.Get(0) != nil {
		dish = args.Get(0).(*models.DishEntry)
	}
	return dish, args.Error(1)
}

func (m *MockDishRepository) Create(entry *models.DishEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockDishRepository) Update(entry *models.DishEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockDishRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDishRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// MockTagRepository is a testify mock for repositories.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll() ([]models.Tag, error) {
	args := m.Called()
	var tags []models.Tag
	if args.Get(0) != nil {
		tags = args.Get(0).([]models.Tag)
	}
	return tags, args.Error(1)
}

func (m *MockTagRepository) GetByIDs(ids []int) ([]models.Tag, error) {
	args := m.Called(ids)
	var tags []models.Tag
	if args.Get(0) != nil {
		tags = args.Get(0).([]models.Tag)
	}
	return tags, args.Error(1)
}

func (m *MockTagRepository) GetByName(name string) (*models.Tag, error) {
	args := m.Called(name)
	var tag *models.Tag
	if args.Get(0) != nil {
		tag = args.Get(0).(*models.Tag)
	}
	return tag, args.Error(1)
}

func (m *MockTagRepository) Create(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTagRepository) MaxPosition(category string) (int, error) {
	args := m.Called(category)
	return args.Int(0), args.Error(1)
}
