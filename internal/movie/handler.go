package movie

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
}

// Create adds a catalog entry.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m, err := h.service.Create(c.UserContext(), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Director:    req.Director,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(m)
}

// List returns every movie in the catalog.
func (h *Handler) List(c *fiber.Ctx) error {
	movies, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "could not list movies")
	}
	if movies == nil {
		movies = []Movie{}
	}
	return c.Status(http.StatusOK).JSON(movies)
}

// GetByTitle returns one movie by its exact title.
func (h *Handler) GetByTitle(c *fiber.Ctx) error {
	m, err := h.service.GetByTitle(c.UserContext(), c.Params("title"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "movie not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "could not fetch movie")
	}
	return c.Status(http.StatusOK).JSON(m)
}

// GetGenre returns genre details by name.
func (h *Handler) GetGenre(c *fiber.Ctx) error {
	g, err := h.service.GenreByName(c.UserContext(), c.Params("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "genre not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "could not fetch genre")
	}
	return c.Status(http.StatusOK).JSON(g)
}

// GetDirector returns director details by name.
func (h *Handler) GetDirector(c *fiber.Ctx) error {
	d, err := h.service.DirectorByName(c.UserContext(), c.Params("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "director not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "could not fetch director")
	}
	return c.Status(http.StatusOK).JSON(d)
}
