// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// invitation API. Routes are split into a public group and a group that
// requires a bearer token.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"invitemaker/internal/handlers"
	"invitemaker/internal/middleware"
)

// corsMaxAge is how long browsers may cache a preflight response, in seconds.
const corsMaxAge = 300

// Deps bundles everything the router wires together.
type Deps struct {
	Tokens      middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics
	CORSOrigins []string

	Auth      *handlers.Auth
	Public    *handlers.Public
	Uploads   *handlers.Uploads
	Designs   *handlers.Designs
	Guests    *handlers.Guests
	RSVP      *handlers.RSVP
	Analytics *handlers.Analytics
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(corsHandler(d.CORSOrigins))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Probes and assets.
	r.Get("/health", healthHandler)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	r.Get("/", d.Public.Root)
	r.Get("/uploads/*", d.Public.Uploads)
	r.Get("/static/templates/*", d.Public.TemplateAssets)

	limited := func(r chi.Router) chi.Router {
		if d.RateLimiter == nil {
			return r
		}
		return r.With(d.RateLimiter.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		// Public endpoints.
		limited(r).Post("/auth/register", d.Auth.Register)
		limited(r).Post("/auth/login", d.Auth.Login)
		r.Get("/templates", d.Public.Templates)
		r.Get("/rsvp/{designID}", d.RSVP.Info)
		limited(r).Post("/rsvp/{designID}", d.RSVP.Create)

		// Bearer token required.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(d.Tokens))

			r.Post("/upload", d.Uploads.Upload)

			r.Route("/designs", func(r chi.Router) {
				r.Get("/", d.Designs.List)
				r.Post("/", d.Designs.Create)
				r.Get("/{id}", d.Designs.Get)
				r.Put("/{id}", d.Designs.Update)
				r.Delete("/{id}", d.Designs.Delete)
				r.Get("/{id}/qr", d.Designs.QR)
				r.Get("/{id}/responses", d.RSVP.List)
				r.Get("/{id}/guests", d.Guests.List)
				r.Post("/{id}/guests", d.Guests.Create)
			})

			r.Patch("/guests/{id}", d.Guests.Update)
			r.Delete("/guests/{id}", d.Guests.Delete)

			r.Get("/analytics/summary", d.Analytics.Summary)
		})
	})

	return r
}

// corsHandler allows the listed origins, or reflects any origin when the
// list is empty. Credentials are allowed either way.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return cors.Handler(opts)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}` + "\n"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
}
