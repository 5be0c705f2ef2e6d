// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"zhi/internal/cache"
	"zhi/internal/config"
	"zhi/internal/database"
	"zhi/internal/middleware"
	"zhi/internal/models"
	"zhi/internal/repository"
	"zhi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	likeRepo    repository.EdgeRepository
	retweetRepo repository.RetweetRepository
	followRepo  repository.FollowRepository

	userService       *service.UserService
	postService       *service.PostService
	engagementService *service.EngagementService
	followService     *service.FollowService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when the caller establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewEdgeRepository(db, repository.LikeEdges)
	retweetRepo := repository.NewRetweetRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := fiberprometheus.New("zhi-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		likeRepo:       likeRepo,
		retweetRepo:    retweetRepo,
		followRepo:     followRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.postService = service.NewPostService(postRepo)
	server.engagementService = service.NewEngagementService(likeRepo, retweetRepo, postRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/health", s.HealthCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/me", middleware.AuthRequired, s.Me)
	auth.Post("/logout", s.Logout)

	// Post routes
	posts := api.Group("/posts")
	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	posts.Get("/feed", middleware.OptionalAuth, s.GetFeed)
	posts.Get("/user/:userId", middleware.OptionalAuth, s.GetUserPosts)
	// Specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:postId/reply", middleware.AuthRequired, s.CreateReply)
	posts.Get("/:postId/replies", middleware.OptionalAuth, s.GetReplies)
	posts.Get("/:postId/reply-count", s.GetReplyCount)
	posts.Get("/:id", middleware.OptionalAuth, s.GetPost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	// Like routes
	likes := api.Group("/likes", middleware.AuthRequired)
	likes.Post("/:postId", s.LikePost)
	likes.Delete("/:postId", s.UnlikePost)

	// Retweet routes
	retweets := api.Group("/retweets", middleware.AuthRequired)
	retweets.Post("/:postId", s.RetweetPost)
	retweets.Delete("/:postId", s.UnretweetPost)

	// Follow routes
	follows := api.Group("/follows")
	follows.Post("/:userId", middleware.AuthRequired, s.FollowUser)
	follows.Delete("/:userId", middleware.AuthRequired, s.UnfollowUser)
	follows.Get("/:userId/followers", s.GetFollowers)
	follows.Get("/:userId/following", s.GetFollowing)
	follows.Get("/:userId/is-following", middleware.AuthRequired, s.IsFollowing)

	// User routes
	users := api.Group("/users")
	users.Put("/profile", middleware.AuthRequired, s.UpdateProfile)
	users.Get("/:id", s.GetUserProfile)
}

// HealthCheck reports server, database, and Redis health.
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
		// The API degrades gracefully without Redis; report it but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"message": "Server is running",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Zhi API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

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
