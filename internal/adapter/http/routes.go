package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the REST routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.Welcome)
	r.Get("/health", h.Health)
	r.Get("/metrics", h.Metrics)

	r.Route("/animals", func(r chi.Router) {
		r.Get("/", h.ListAnimals)
		r.Post("/bird", h.CreateBird)
		r.Post("/dog", h.CreateDog)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", h.GetAnimal)
			r.Delete("/", h.DeleteAnimal)

			r.Post("/eat", h.Eat)
			r.Post("/sleep", h.Sleep)
			r.Put("/hungry", h.SetHungry)
			r.Put("/sleepy", h.SetSleepy)
			r.Put("/duty", h.SetDuty)
			r.Post("/perform-duty", h.PerformDuty)
			r.Put("/action", h.SetAction)
			r.Post("/perform-action", h.PerformAction)
		})
	})
}
