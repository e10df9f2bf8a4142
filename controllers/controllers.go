package controllers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dishlist-app/dishlist/services"
)

var plantBasedFlags = map[string]bool{"vegan": true, "vegetarian": true}
var allergenFreeFlags = map[string]bool{"gluten-free": true, "dairy-free": true}

// templateFuncs returns the helper functions shared by all templates
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": func(values []string) string {
			return strings.Join(values, ", ")
		},
		"dietaryBadgeClass": func(flag string) string {
			normalized := strings.ToLower(strings.TrimSpace(flag))
			switch {
			case plantBasedFlags[normalized]:
				return "badge-plant"
			case allergenFreeFlags[normalized]:
				return "badge-free"
			default:
				return "badge-other"
			}
		},
		"formatDishTime": func(t time.Time) string {
			return t.Local().Format("Jan 02, 2006 03:04 PM")
		},
		"hasTag": func(ids []int, id int) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
	}
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, data interface{}, pageTemplates ...string) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, data, pageTemplates...)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, data interface{}, pageTemplates ...string) error {
	tmpl := template.New(templateName)
	tmpl.Funcs(templateFuncs())

	// Parse layout, page template and any partials it includes
	files := append([]string{"templates/layout.html"}, pageTemplates...)
	_, err := tmpl.ParseFiles(files...)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// renderPartial renders a standalone partial template without the layout
func renderPartial(w http.ResponseWriter, partialTemplate string, data interface{}) error {
	tmpl := template.New("partial")
	tmpl.Funcs(templateFuncs())

	parsed, err := tmpl.ParseFiles(partialTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	name := partialTemplate[strings.LastIndex(partialTemplate, "/")+1:]
	if err := parsed.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// Controllers holds all controller instances
type Controllers struct {
	Home  *HomeController
	Dish  *DishController
	Admin *AdminController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Home:  NewHomeController(services),
		Dish:  NewDishController(services),
		Admin: NewAdminController(services),
	}
}
