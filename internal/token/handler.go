package token

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/myflix/myflix/internal/credential"
)

const invalidCredentialsMsg = "invalid credentials"

// Handler exposes the login endpoint.
type Handler struct {
	users     *credential.Service
	authority *Authority
	logger    *slog.Logger
}

// NewHandler builds the login HTTP handler.
func NewHandler(users *credential.Service, authority *Authority, logger *slog.Logger) *Handler {
	return &Handler{users: users, authority: authority, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User      credential.User `json:"user"`
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
}

// Login verifies credentials and returns the sanitized user plus a bearer
// token. Any verification failure produces the same generic 401: no partial
// success, no token without a confirmed identity.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Authenticate(c.UserContext(), credential.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		h.logger.Info("login rejected", slog.String("username", req.Username))
		return fiber.NewError(http.StatusUnauthorized, invalidCredentialsMsg)
	}

	signed, exp, err := h.authority.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		return fiber.NewError(http.StatusInternalServerError, "could not issue token")
	}

	h.logger.Info("login completed", slog.String("username", user.Username))
	return c.Status(http.StatusOK).JSON(loginResponse{
		User:      user,
		Token:     signed,
		ExpiresIn: int64(exp.Sub(h.authority.now()).Seconds()),
	})
}
