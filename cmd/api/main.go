// Package main is the entry point for the feedback service.
package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	_ "github.com/Shelkonty/feedback-whole/docs"
	"github.com/Shelkonty/feedback-whole/internal/config"
	"github.com/Shelkonty/feedback-whole/internal/database"
	"github.com/Shelkonty/feedback-whole/internal/handlers"
	"github.com/Shelkonty/feedback-whole/internal/repository"
	"github.com/Shelkonty/feedback-whole/internal/routes"
	"github.com/Shelkonty/feedback-whole/internal/service"
	"github.com/Shelkonty/feedback-whole/pkg/logger"
	"github.com/Shelkonty/feedback-whole/pkg/redis"
)

// @title Feedback Board API
// @version 1.0
// @description REST backend for the feedback board: accounts, posts, votes and taxonomy
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment)
	log := logger.L

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if err := database.Seed(db); err != nil {
		log.WithError(err).Fatal("failed to seed taxonomy")
	}

	redisClient := redis.NewClient(cfg)
	if redisClient == nil {
		log.Warn("REDIS_HOST not set, taxonomy cache disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	// Services
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if jwtService == nil {
		log.Fatal("JWT_SECRET must be at least 32 bytes")
	}
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	feedbackService := service.NewFeedbackService(postRepo, voteRepo, taxonomyRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, redisClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	healthHandler := handlers.NewHealthHandler()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.Setup(router, cfg, jwtService, authHandler, feedbackHandler, taxonomyHandler, healthHandler)

	log.WithField("port", cfg.Port).Info("starting feedback service")
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
