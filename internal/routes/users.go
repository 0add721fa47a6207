package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/myflix/myflix/internal/credential"
	"github.com/myflix/myflix/internal/middleware"
	"github.com/myflix/myflix/internal/movie"
	"github.com/myflix/myflix/internal/token"
)

const birthdayLayout = "2006-01-02"

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

func (r userRequest) birthday() (*time.Time, error) {
	if r.Birthday == "" {
		return nil, nil
	}
	t, err := time.Parse(birthdayLayout, r.Birthday)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RegisterRegistrationRoute wires the public signup endpoint. The response
// body carries the sanitized user; the password hash never serializes.
func RegisterRegistrationRoute(r fiber.Router, users *credential.Service, logger *slog.Logger) {
	r.Post("/users", func(c *fiber.Ctx) error {
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		birthday, err := req.birthday()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		}

		user, err := users.Register(c.UserContext(), credential.RegisterInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			Birthday: birthday,
		})
		if err != nil {
			if errors.Is(err, credential.ErrUserExists) {
				return fiber.NewError(http.StatusConflict, "username already taken")
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		logger.Info("user registered", slog.String("username", user.Username))
		return c.Status(http.StatusCreated).JSON(user)
	})
}

// RegisterUserRoutes wires the authenticated profile and favorites endpoints.
// Mutations additionally require the authenticated identity to own the
// target account.
func RegisterUserRoutes(r fiber.Router, users *credential.Service, movies *movie.Service, logger *slog.Logger) {
	r.Get("/users/:username", func(c *fiber.Ctx) error {
		user, err := users.Get(c.UserContext(), c.Params("username"))
		if err != nil {
			if errors.Is(err, credential.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "could not fetch user")
		}
		return c.Status(http.StatusOK).JSON(user)
	})

	r.Put("/users/:username", func(c *fiber.Ctx) error {
		username := c.Params("username")
		if err := requireOwner(c, username); err != nil {
			return err
		}
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		birthday, err := req.birthday()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		}

		user, err := users.Update(c.UserContext(), username, credential.UpdateInput{
			Password: req.Password,
			Email:    req.Email,
			Birthday: birthday,
		})
		if err != nil {
			if errors.Is(err, credential.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusOK).JSON(user)
	})

	r.Delete("/users/:username", func(c *fiber.Ctx) error {
		username := c.Params("username")
		if err := requireOwner(c, username); err != nil {
			return err
		}
		if err := users.Remove(c.UserContext(), username); err != nil {
			if errors.Is(err, credential.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "could not delete user")
		}
		logger.Info("user deregistered", slog.String("username", username))
		return c.Status(http.StatusOK).JSON(fiber.Map{"message": username + " was deleted"})
	})

	r.Post("/users/:username/movies/:movieID", func(c *fiber.Ctx) error {
		username := c.Params("username")
		movieID := c.Params("movieID")
		if err := requireOwner(c, username); err != nil {
			return err
		}
		if _, err := movies.Get(c.UserContext(), movieID); err != nil {
			return fiber.NewError(http.StatusNotFound, "movie not found")
		}
		user, err := users.AddFavorite(c.UserContext(), username, movieID)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusOK).JSON(user)
	})

	r.Delete("/users/:username/movies/:movieID", func(c *fiber.Ctx) error {
		username := c.Params("username")
		if err := requireOwner(c, username); err != nil {
			return err
		}
		user, err := users.RemoveFavorite(c.UserContext(), username, c.Params("movieID"))
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusOK).JSON(user)
	})
}

// requireOwner runs the identity-match check after authentication: the
// authenticated subject must equal the account named in the path.
func requireOwner(c *fiber.Ctx, owner string) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	if err := token.Authorize(identity, owner); err != nil {
		return fiber.NewError(http.StatusForbidden, "you can only modify your own account")
	}
	return nil
}
