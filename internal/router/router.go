package router

import (
	"net/http"

	"pos-admin-api/internal/handler"
	"pos-admin-api/internal/middleware"
	"pos-admin-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	OutletHandler    *handler.ResourceHandler[model.Outlet]
	DiscountHandler  *handler.ResourceHandler[model.Discount]
	SelectionHandler *handler.SelectionHandler
	SettingsHandler  *handler.SettingsHandler
	AdminHandler     *handler.AdminHandler
}

// resourceRoutes is the route set shared by every record collection.
type resourceRoutes interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func mountResource(r chi.Router, path string, h resourceRoutes) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.OutletHandler != nil {
			mountResource(r, model.ResourceOutlets.Path(), cfg.OutletHandler)
		}
		if cfg.DiscountHandler != nil {
			mountResource(r, model.ResourceDiscounts.Path(), cfg.DiscountHandler)
		}

		if cfg.SelectionHandler != nil {
			r.Route("/selected-outlet", func(r chi.Router) {
				r.Get("/", cfg.SelectionHandler.Get)
				r.Put("/", cfg.SelectionHandler.Set)
				r.Delete("/", cfg.SelectionHandler.Clear)
			})
		}

		if cfg.SettingsHandler != nil {
			r.Route("/settings", func(r chi.Router) {
				r.Get("/api-url", cfg.SettingsHandler.GetAPIURL)
				r.Put("/api-url", cfg.SettingsHandler.SetAPIURL)
			})
		}

		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", cfg.AdminHandler.GetStats)
				r.Post("/seed", cfg.AdminHandler.Seed)
			})
		}
	})

	return r
}
