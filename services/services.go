package services

import (
	"github.com/dishlist-app/dishlist/repositories"
)

// Services holds all service instances
type Services struct {
	Config ConfigService
	Dish   DishService
	Tag    TagService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, configFilePath string) *Services {
	configService := NewConfigService(repos.Config, configFilePath)
	return &Services{
		Config: configService,
		Dish:   NewDishService(repos.Dish, repos.Tag, configService),
		Tag:    NewTagService(repos.Tag),
	}
}
