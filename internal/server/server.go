// Package server contains the HTTP surface of the application: the Fiber app,
// route table, and request handlers.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/identity"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	tokens   *identity.TokenManager
	users    *service.UserService
	profiles *service.ProfileService
	posts    *service.PostService
}

// NewServer creates a server instance, connecting to the database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return New(cfg, db, cache.GetClient()), nil
}

// New wires a server from pre-built collaborators. Tests construct servers
// through this entry point with an in-memory database.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	tokens := identity.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	middleware.InitMiddleware(tokens)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		tokens:   tokens,
		users:    service.NewUserService(userRepo, profileRepo, tokens),
		profiles: service.NewProfileService(profileRepo),
		posts:    service.NewPostService(postRepo, userRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Prometheus HTTP metrics
	prom := fiberprometheus.New("devconnect")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	// Account registration and login (public)
	api.Post("/accounts", s.Register)
	api.Post("/sessions", s.Login)

	// Current identity (private)
	api.Get("/me", middleware.AuthRequired, s.GetMe)

	// Profile routes; reads are public, mutations private
	profiles := api.Group("/profiles")
	profiles.Get("/", s.ListProfiles)
	profiles.Get("/me", middleware.AuthRequired, s.GetMyProfile)
	profiles.Post("/", middleware.AuthRequired, s.UpsertProfile)
	profiles.Delete("/", middleware.AuthRequired, s.DeleteAccount)
	profiles.Put("/experience", middleware.AuthRequired, s.AddExperience)
	profiles.Delete("/experience/:id", middleware.AuthRequired, s.RemoveExperience)
	profiles.Put("/education", middleware.AuthRequired, s.AddEducation)
	profiles.Delete("/education/:id", middleware.AuthRequired, s.RemoveEducation)
	// Generic /:accountId route must be last
	profiles.Get("/:accountId", s.GetProfileByAccount)

	// Post routes (all private)
	posts := api.Group("/posts", middleware.AuthRequired)
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Put("/:id/like", s.LikePost)
	posts.Put("/:id/unlike", s.UnlikePost)
	posts.Post("/:id/comments", s.AddComment)
	posts.Delete("/:id/comments/:commentId", s.RemoveComment)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
}

// HealthCheck handles health check requests.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "devconnect",
		"status":  dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Devconnect API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// respondServiceError maps a service error onto the uniform response shapes
// using the error's code. Handlers with contract-specific status mappings
// (e.g. profile lookups surfacing not-found as 400) handle those before
// falling through to this.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeDuplicateEmail, models.CodeInvalidCredentials:
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	case models.CodeUnauthorized, models.CodeForbidden:
		// Ownership refusals reply 401, same as the unauthenticated case.
		return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
	case models.CodeNotFound:
		return models.RespondWithError(c, fiber.StatusNotFound, appErr)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
	}
}
