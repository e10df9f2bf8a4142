package models

// AppConfig is the admin-editable configuration: which dish types the submission
// form offers, and which networks may reach the admin screen.
type AppConfig struct {
	DishTypes     []string `json:"dish_types"`
	AdminNetworks []string `json:"admin_networks"`
}

// DefaultAppConfig returns the configuration seeded on first run.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DishTypes:     []string{"Main Dish", "Side Dish", "Dessert", "Beverage"},
		AdminNetworks: []string{"127.0.0.1/32"},
	}
}

// Equal reports whether two configs hold the same values in the same order
func (c AppConfig) Equal(other AppConfig) bool {
	return equalStrings(c.DishTypes, other.DishTypes) &&
		equalStrings(c.AdminNetworks, other.AdminNetworks)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
