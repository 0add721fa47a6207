package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/myflix/myflix/internal/config"
	"github.com/myflix/myflix/internal/credential"
	"github.com/myflix/myflix/internal/middleware"
	"github.com/myflix/myflix/internal/movie"
	"github.com/myflix/myflix/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !config.IsDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var userRepo credential.Repository
	if d.DB != nil {
		userRepo = credential.NewPostgresRepository(d.DB)
	} else {
		userRepo = credential.NewMemoryRepository()
	}
	var movieRepo movie.Repository
	if d.DB != nil {
		movieRepo = movie.NewPostgresRepository(d.DB)
	} else {
		movieRepo = movie.NewMemoryRepository()
	}

	users := credential.NewService(userRepo, credential.NewHasher(d.Cfg.BcryptCost))
	movies := movie.NewService(movieRepo)

	var authOpts []token.Option
	if d.Cfg.StrictAuth {
		authOpts = append(authOpts, token.WithAccountCheck(userRepo))
	}
	authority := token.NewAuthority(d.Cfg.JWTSecret, d.Cfg.TokenTTL, authOpts...)

	loginHandler := token.NewHandler(users, authority, d.Logger)
	movieHandler := movie.NewHandler(movies)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the MyFlix movie API!")
	})

	// Public routes
	RegisterRegistrationRoute(app, users, d.Logger)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(app, loginHandler, rateLimiter)
	app.Get("/movies", movieHandler.List)

	// Protected routes
	jwtmw := middleware.RequireAuth(authority, d.Logger)
	protected := app.Group("", jwtmw)
	RegisterMovieRoutes(protected, movieHandler)
	RegisterUserRoutes(protected, users, movies, d.Logger)

	return nil
}
