package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupRateLimitApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, 5), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, cleanup
}

func loginAttempt(t *testing.T, app *fiber.App, username string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimitBlocksSixthAttempt(t *testing.T) {
	app, cleanup := setupRateLimitApp(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		if status := loginAttempt(t, app, "alice77"); status != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, status)
		}
	}
	if status := loginAttempt(t, app, "alice77"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 on sixth attempt, got %d", status)
	}
}

func TestLoginRateLimitIsPerUsername(t *testing.T) {
	app, cleanup := setupRateLimitApp(t)
	defer cleanup()

	for i := 0; i < 6; i++ {
		loginAttempt(t, app, "alice77")
	}
	if status := loginAttempt(t, app, "bobby42"); status != fiber.StatusOK {
		t.Fatalf("expected other usernames to be unaffected, got %d", status)
	}
}

func TestLoginRateLimitNoRedisIsNoop(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected fail-open without redis, got %d", resp.StatusCode)
		}
	}
}
