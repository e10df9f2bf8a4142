package controllers

import (
	"net/http"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/services"
)

// HomeController handles the public dish list
type HomeController struct {
	services *services.Services
}

// NewHomeController creates a new home controller
func NewHomeController(services *services.Services) *HomeController {
	return &HomeController{services: services}
}

// Index handles GET /
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	viewMode := r.URL.Query().Get("view")
	if viewMode != "cards" && viewMode != "table" {
		viewMode = "cards"
	}

	searchQuery := r.URL.Query().Get("search")

	dishes, err := c.services.Dish.ListDishes(searchQuery)
	if err != nil {
		http.Error(w, "Failed to load dishes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Dishes      []models.DishEntry
		ViewMode    string
		SearchQuery string
	}{
		Title:       "DishList",
		CurrentPage: "home",
		Dishes:      dishes,
		ViewMode:    viewMode,
		SearchQuery: searchQuery,
	}

	renderTemplate(w, "home", templateData,
		"templates/home.html",
		"templates/partials/table_rows.html",
		"templates/partials/card_grid.html",
	)
}

// TableRows handles GET /table/rows, the live-search partial for table view
func (c *HomeController) TableRows(w http.ResponseWriter, r *http.Request) {
	dishes, err := c.services.Dish.ListDishes(r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, "Failed to load dishes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderPartial(w, "templates/partials/table_rows.html", struct {
		Dishes []models.DishEntry
	}{Dishes: dishes})
}

// CardGrid handles GET /cards/grid, the live-search partial for card view
func (c *HomeController) CardGrid(w http.ResponseWriter, r *http.Request) {
	dishes, err := c.services.Dish.ListDishes(r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, "Failed to load dishes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderPartial(w, "templates/partials/card_grid.html", struct {
		Dishes []models.DishEntry
	}{Dishes: dishes})
}
