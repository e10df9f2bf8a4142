package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/dishlist-app/dishlist/config"
	"github.com/dishlist-app/dishlist/controllers"
	"github.com/dishlist-app/dishlist/database"
	authmiddleware "github.com/dishlist-app/dishlist/middleware"
	"github.com/dishlist-app/dishlist/repositories"
	"github.com/dishlist-app/dishlist/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitializeDatabase(cfg.DatabasePath()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos, cfg.ConfigPath())

	// Warm the config so the allowlist and defaults exist before the first request
	if _, err := srvs.Config.Get(); err != nil {
		log.Fatalf("Failed to load admin config: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r, err := setupRouter(ctrl, srvs, repos, cfg)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	fmt.Printf("DishList starting on port %s\n", cfg.Port)
	fmt.Printf("Visit: http://localhost:%s\n", cfg.Port)
	fmt.Printf("Database: %s\n", cfg.DatabasePath())

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, repos *repositories.Repositories, cfg *config.Server) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	// Session middleware, used for admin flash messages
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "dishlist_session",
		Secure:      cfg.UseHTTPS,
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	// PUBLIC ROUTES
	r.Get("/", ctrl.Home.Index)
	r.Get("/add", ctrl.Dish.AddForm)
	r.Post("/add", ctrl.Dish.Create)
	r.Get("/table/rows", ctrl.Home.TableRows)
	r.Get("/cards/grid", ctrl.Home.CardGrid)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "dishlist"}`)
	})

	// ADMIN ROUTES (IP allowlist checked on every request)
	r.Route("/pantry-admin", func(r chi.Router) {
		r.Use(authmiddleware.RequireAllowlistedIP(srvs.Config))
		r.Use(authmiddleware.AuditLogger(repos.Audit))

		r.Get("/", ctrl.Admin.Index)
		r.Post("/", ctrl.Admin.UpdateSettings)

		r.Post("/tags", ctrl.Admin.CreateTag)
		r.Post("/tags/{id}/delete", ctrl.Admin.DeleteTag)

		r.Get("/dishes/{id}", ctrl.Admin.EditDish)
		r.Post("/dishes/{id}", ctrl.Admin.UpdateDish)
		r.Post("/dishes/{id}/delete", ctrl.Admin.DeleteDish)
	})

	return r, nil
}
