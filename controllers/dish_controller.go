package controllers

import (
	"net/http"
	"strconv"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/services"
)

// DishController handles the public submission form
type DishController struct {
	services *services.Services
}

// NewDishController creates a new dish controller
func NewDishController(services *services.Services) *DishController {
	return &DishController{services: services}
}

// addFormData is the template payload for the submission form
type addFormData struct {
	Title       string
	CurrentPage string
	Error       string
	DishTypes   []string
	TagGroups   []models.TagGroup
	Form        *models.DishForm
}

// AddForm handles GET /add
func (c *DishController) AddForm(w http.ResponseWriter, r *http.Request) {
	data, err := c.formData("", &models.DishForm{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "add", data, "templates/add.html")
}

// Create handles POST /add
func (c *DishController) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseDishForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.services.Dish.CreateDish(form); err != nil {
		// Reload the form with submitted values and the error
		data, loadErr := c.formData(err.Error(), form)
		if loadErr != nil {
			http.Error(w, loadErr.Error(), http.StatusInternalServerError)
			return
		}
		renderTemplateWithStatus(w, http.StatusBadRequest, "add_error", data, "templates/add.html")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *DishController) formData(errMsg string, form *models.DishForm) (*addFormData, error) {
	cfg, err := c.services.Config.Get()
	if err != nil {
		return nil, err
	}

	tagGroups, err := c.services.Tag.GetTagGroups()
	if err != nil {
		return nil, err
	}

	return &addFormData{
		Title:       "Bring a Dish",
		CurrentPage: "add",
		Error:       errMsg,
		DishTypes:   cfg.DishTypes,
		TagGroups:   tagGroups,
		Form:        form,
	}, nil
}

// parseDishForm extracts a DishForm from a submitted request
func parseDishForm(r *http.Request) (*models.DishForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &models.DishForm{
		Contributor: r.FormValue("contributor"),
		DishName:    r.FormValue("dish_name"),
		DishType:    r.FormValue("dish_type"),
		Allergens:   r.FormValue("allergens"),
		Notes:       r.FormValue("notes"),
	}

	for _, raw := range r.Form["dietary_tags"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		form.TagIDs = append(form.TagIDs, id)
	}

	return form, nil
}
