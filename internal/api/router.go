/**
 * @description
 * This file sets up the HTTP router using the go-chi/chi router. All
 * application routes live under the /api prefix the mobile client expects,
 * with standard middleware for logging, panic recovery, request timeouts
 * and permissive CORS.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the service routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Instrumental service is healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.handleRoot)
		r.Post("/seed", h.handleSeed)

		r.Get("/instrumentals", h.handleListInstrumentals)
		r.Get("/instrumentals/featured", h.handleFeaturedInstrumentals)
		r.Get("/instrumentals/{id}", h.handleGetInstrumental)
		r.Post("/instrumentals", h.handleCreateInstrumental)
		r.Put("/instrumentals/{id}", h.handleUpdateInstrumental)
		r.Delete("/instrumentals/{id}", h.handleDeleteInstrumental)

		r.Get("/moods", h.handleMoods)

		r.Post("/users", h.handleCreateOrGetUser)
		r.Get("/users/{deviceID}", h.handleGetUser)

		r.Post("/subscription/subscribe", h.handleSubscribe)
		r.Get("/subscription/status/{userID}", h.handleSubscriptionStatus)
		r.Post("/subscription/restore/{userID}", h.handleRestore)
		r.Post("/subscription/cancel/{userID}", h.handleCancel)

		r.Post("/admin/instrumentals/{id}/audio", h.handleUpdateAudio)
		r.Get("/admin/stats", h.handleStats)
		r.Post("/admin/users/{userID}/reconcile", h.handleReconcile)
	})

	return r
}
