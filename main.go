package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"userapi/internal/config"
	"userapi/internal/db"
	"userapi/internal/handlers"
	"userapi/internal/middleware"
	"userapi/internal/repositories"
	"userapi/internal/services"
	"userapi/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// --- MongoDB ---
	// The client is created once and shared for the process lifetime.
	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Info("Connected to MongoDB")

	userRepo := repositories.NewMongoUserRepository(client.Database(cfg.MongoDB))
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// --- Event publisher ---
	// Optional: without a broker URL, user events are discarded.
	var publisher rabbitmq.Publisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		publisher = mqClient
		log.Info("Connected to RabbitMQ")
	}
	defer publisher.Close()

	// --- Services and handlers ---
	userService := services.NewUserService(userRepo, publisher, log)
	userHandler := handlers.NewUserHandler(userService, log)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(log),
	})

	middleware.Register(app, cfg)

	app.Use(swagger.New(swagger.Config{
		BasePath: "/api",
		FilePath: "./api/openapi.yaml",
		Path:     "docs",
		Title:    "Users API Documentation",
	}))

	api := app.Group("/api")
	handlers.RegisterHealthRoutes(api)
	userHandler.RegisterRoutes(api)

	// Unmatched routes flow through the central error handler too.
	app.Use(handlers.HandleRouteNotFound)

	// --- Start HTTP server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Server listening on %s", cfg.Port)
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}
