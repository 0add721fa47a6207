package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/myflix/myflix/internal/movie"
)

// RegisterMovieRoutes wires the authenticated catalog endpoints. The full
// listing stays public and is registered separately.
func RegisterMovieRoutes(r fiber.Router, h *movie.Handler) {
	r.Post("/movies", h.Create)
	r.Get("/movies/:title", h.GetByTitle)
	r.Get("/genres/:name", h.GetGenre)
	r.Get("/directors/:name", h.GetDirector)
}
