package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/payflow/internal/http/auth"
	"github.com/MrJamesThe3rd/payflow/internal/http/clients"
	"github.com/MrJamesThe3rd/payflow/internal/http/imports"
	"github.com/MrJamesThe3rd/payflow/internal/http/logs"
	"github.com/MrJamesThe3rd/payflow/internal/http/odoocheck"
)

type Handlers struct {
	Auth      *auth.Handler
	Logs      *logs.Handler
	Clients   *clients.Handler
	OdooCheck *odoocheck.Handler
	Imports   *imports.Handler
	// Static serves the UI; nil disables it.
	Static http.Handler
}

func New(h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", auth.PasswordHeader},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Middleware)

			r.Route("/logs", h.Logs.Routes)

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Clients.Routes(r)
			})

			r.Route("/test-odoo", h.OdooCheck.Routes)

			r.Route("/import", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Imports.Routes(r)
			})
		})

		r.NotFound(http.NotFound)
	})

	if h.Static != nil {
		router.Handle("/*", h.Static)
	}

	return router
}
