package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Dish   DishRepository
	Tag    TagRepository
	Config ConfigRepository
	Audit  AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Dish:   NewDishRepository(db),
		Tag:    NewTagRepository(db),
		Config: NewConfigRepository(db),
		Audit:  NewAuditRepository(db),
	}
}
