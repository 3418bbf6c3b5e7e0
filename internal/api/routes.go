package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Stateless lookups
		r.Get("/biomes", handler.ListBiomes)
		r.Get("/classify", handler.Classify)
		r.Get("/presets", handler.ListPresets)

		// World lifecycle
		r.Route("/worlds", func(r chi.Router) {
			r.Post("/", handler.CreateWorld)
			r.Get("/", handler.ListWorlds)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.GetWorld)
				r.Put("/", handler.RegenerateWorld)
				r.Delete("/", handler.DeleteWorld)

				// Generated data
				r.Get("/grid", handler.GetGrid)
				r.Get("/cells/{x}/{y}", handler.GetCell)
				r.Get("/map.png", handler.GetMap)
				r.Get("/mesh", handler.GetMesh)
			})
		})
	})

	return r
}
