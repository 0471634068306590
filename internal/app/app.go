// Package app assembles repositories, services, handlers and middleware into
// a runnable Fiber application.
package app

import (
	"fmt"
	"time"

	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/handlers"
	"blog/internal/middleware"
	"blog/internal/repositories"
	"blog/internal/services"
	"blog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DriverMemory keeps all data in process memory. Nothing survives a restart.
const DriverMemory = "memory"

// App is the wired HTTP application and the resources it owns.
type App struct {
	Fiber *fiber.App

	db     *gorm.DB
	broker *rabbitmq.Client
}

// New wires the application described by cfg. The admin account is seeded
// when cfg.AdminEmail is set.
func New(cfg *config.Config) (*App, error) {
	a := &App{}

	userRepo, postRepo, err := a.openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		broker, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.broker = broker
		events = broker
	} else {
		logrus.Info("RABBITMQ_URL not set, audit events disabled")
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	hasher := services.NewBcryptHasher(0)

	authService := services.NewAuthService(userRepo, tokens, hasher, events)
	postService := services.NewPostService(postRepo, tokens, events)
	userService := services.NewUserService(userRepo, hasher, events)

	if cfg.AdminEmail != "" {
		created, err := authService.EnsureAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed admin account: %w", err)
		}
		if created {
			logrus.WithField("email", cfg.AdminEmail).Info("admin account created")
		}
	}

	guard := middleware.NewGuard(tokens, postService)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: logrus.StandardLogger().Out}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewPostHandler(postService).RegisterRoutes(api, guard)
	handlers.NewUserHandler(userService).RegisterRoutes(api, guard)

	a.Fiber = app
	return a, nil
}

func (a *App) openRepositories(cfg *config.Config) (repositories.UserRepository, repositories.PostRepository, error) {
	if cfg.DatabaseDriver == DriverMemory {
		logrus.Warn("using in-memory repositories, data is lost on restart")
		return repositories.NewMockUserRepository(), repositories.NewMockPostRepository(), nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	a.db = db
	logrus.WithField("driver", cfg.DatabaseDriver).Info("database connected")
	return repositories.NewGORMUserRepository(db), repositories.NewGORMPostRepository(db), nil
}

// Listen serves HTTP on addr until Shutdown is called.
func (a *App) Listen(addr string) error {
	return a.Fiber.Listen(addr)
}

// Shutdown stops the HTTP server and releases the broker and database.
func (a *App) Shutdown() error {
	var err error
	if a.Fiber != nil {
		err = a.Fiber.Shutdown()
	}
	a.Close()
	return err
}

// Close releases the broker connection and database pool. It is safe to call
// on a partially built App.
func (a *App) Close() {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			logrus.WithError(err).Warn("error closing RabbitMQ client")
		}
		a.broker = nil
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.WithError(err).Warn("error closing database")
			}
		}
		a.db = nil
	}
}
