package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"gitea.com/go-chi/session"
	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/services"
	"github.com/go-chi/chi/v5"
)

const adminPath = "/pantry-admin"

// AdminController handles the IP-gated configuration screen
type AdminController struct {
	services *services.Services
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services) *AdminController {
	return &AdminController{services: services}
}

// adminPageData is the template payload for the admin screen
type adminPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	Config      models.AppConfig
	Dishes      []models.DishEntry
	TagGroups   []models.TagGroup
	Categories  []string
}

// Index handles GET /pantry-admin
func (c *AdminController) Index(w http.ResponseWriter, r *http.Request) {
	data, err := c.pageData(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "admin", data, "templates/admin.html")
}

// UpdateSettings handles POST /pantry-admin
func (c *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	dishTypes := splitLines(r.FormValue("dish_types_input"))
	networks := splitLines(r.FormValue("admin_networks_input"))

	if _, err := c.services.Config.Update(dishTypes, networks); err != nil {
		data, loadErr := c.pageData(r)
		if loadErr != nil {
			http.Error(w, loadErr.Error(), http.StatusInternalServerError)
			return
		}
		data.Error = err.Error()
		renderTemplateWithStatus(w, http.StatusBadRequest, "admin_error", data, "templates/admin.html")
		return
	}

	c.setFlash(r, "flash_success", "Settings saved")
	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// CreateTag handles POST /pantry-admin/tags
func (c *AdminController) CreateTag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.TagForm{
		Name:     r.FormValue("tag_name"),
		Category: r.FormValue("tag_category"),
	}

	if _, err := c.services.Tag.CreateTag(form); err != nil {
		c.setFlash(r, "flash_error", err.Error())
	} else {
		c.setFlash(r, "flash_success", "Tag added")
	}

	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// DeleteTag handles POST /pantry-admin/tags/{id}/delete
func (c *AdminController) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid tag ID", http.StatusBadRequest)
		return
	}

	if err := c.services.Tag.DeleteTag(id); err != nil {
		c.setFlash(r, "flash_error", err.Error())
	} else {
		c.setFlash(r, "flash_success", "Tag removed")
	}

	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// EditDish handles GET /pantry-admin/dishes/{id}
func (c *AdminController) EditDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid dish ID", http.StatusBadRequest)
		return
	}

	dish, err := c.services.Dish.GetDish(id)
	if err != nil {
		http.Error(w, "Dish not found: "+err.Error(), http.StatusNotFound)
		return
	}

	form := &models.DishForm{
		Contributor: dish.Contributor,
		DishName:    dish.DishName,
		DishType:    dish.DishType,
		Allergens:   strings.Join(dish.Allergens, ", "),
		Notes:       dish.Notes,
		TagIDs:      dish.TagIDs,
	}

	data, err := c.editFormData("", dish, form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "admin_edit_dish", data, "templates/admin_edit_dish.html")
}

// UpdateDish handles POST /pantry-admin/dishes/{id}
func (c *AdminController) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid dish ID", http.StatusBadRequest)
		return
	}

	dish, err := c.services.Dish.GetDish(id)
	if err != nil {
		http.Error(w, "Dish not found: "+err.Error(), http.StatusNotFound)
		return
	}

	form, err := parseDishForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.services.Dish.UpdateDish(id, form); err != nil {
		data, loadErr := c.editFormData(err.Error(), dish, form)
		if loadErr != nil {
			http.Error(w, loadErr.Error(), http.StatusInternalServerError)
			return
		}
		renderTemplateWithStatus(w, http.StatusBadRequest, "admin_edit_error", data, "templates/admin_edit_dish.html")
		return
	}

	c.setFlash(r, "flash_success", "Dish updated")
	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// DeleteDish handles POST /pantry-admin/dishes/{id}/delete
func (c *AdminController) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid dish ID", http.StatusBadRequest)
		return
	}

	if err := c.services.Dish.DeleteDish(id); err != nil {
		http.Error(w, "Dish not found: "+err.Error(), http.StatusNotFound)
		return
	}

	c.setFlash(r, "flash_success", "Dish removed")
	http.Redirect(w, r, adminPath, http.StatusSeeOther)
}

// pageData assembles the admin screen payload and consumes any flash messages
func (c *AdminController) pageData(r *http.Request) (*adminPageData, error) {
	cfg, err := c.services.Config.Get()
	if err != nil {
		return nil, err
	}

	dishes, err := c.services.Dish.ListDishes("")
	if err != nil {
		return nil, err
	}

	tagGroups, err := c.services.Tag.GetTagGroups()
	if err != nil {
		return nil, err
	}

	return &adminPageData{
		Title:       "Pantry Admin",
		CurrentPage: "admin",
		Error:       c.takeFlash(r, "flash_error"),
		Success:     c.takeFlash(r, "flash_success"),
		Config:      cfg,
		Dishes:      dishes,
		TagGroups:   tagGroups,
		Categories:  c.services.Tag.GetCategories(),
	}, nil
}

// editDishData is the template payload for the dish edit form
type editDishData struct {
	Title       string
	CurrentPage string
	Error       string
	Dish        *models.DishEntry
	DishTypes   []string
	TagGroups   []models.TagGroup
	Form        *models.DishForm
}

func (c *AdminController) editFormData(errMsg string, dish *models.DishEntry, form *models.DishForm) (*editDishData, error) {
	cfg, err := c.services.Config.Get()
	if err != nil {
		return nil, err
	}

	tagGroups, err := c.services.Tag.GetTagGroups()
	if err != nil {
		return nil, err
	}

	return &editDishData{
		Title:       "Edit Dish",
		CurrentPage: "admin",
		Error:       errMsg,
		Dish:        dish,
		DishTypes:   cfg.DishTypes,
		TagGroups:   tagGroups,
		Form:        form,
	}, nil
}

func (c *AdminController) setFlash(r *http.Request, key, message string) {
	if sess := session.GetSession(r); sess != nil {
		sess.Set(key, message)
	}
}

func (c *AdminController) takeFlash(r *http.Request, key string) string {
	sess := session.GetSession(r)
	if sess == nil {
		return ""
	}
	message, _ := sess.Get(key).(string)
	if message != "" {
		sess.Delete(key)
	}
	return message
}

// splitLines turns one-per-line textarea input into a clean string slice
func splitLines(input string) []string {
	var values []string
	for _, line := range strings.Split(input, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
