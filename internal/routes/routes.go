// Package routes defines HTTP routes for the feedback service.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Shelkonty/feedback-whole/docs"
	"github.com/Shelkonty/feedback-whole/internal/config"
	"github.com/Shelkonty/feedback-whole/internal/handlers"
	"github.com/Shelkonty/feedback-whole/internal/middleware"
	"github.com/Shelkonty/feedback-whole/internal/service"
)

// Setup configures all HTTP routes for the application.
func Setup(
	router *gin.Engine,
	cfg *config.Config,
	jwtService service.JWTService,
	authHandler *handlers.AuthHandler,
	feedbackHandler *handlers.FeedbackHandler,
	taxonomyHandler *handlers.TaxonomyHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)

		profile := users.Group("/profile", middleware.RequireAuth(jwtService))
		{
			profile.GET("", authHandler.GetProfile)
			profile.PUT("", authHandler.UpdateProfile)
			profile.DELETE("", authHandler.DeleteProfile)
		}
	}

	feedback := api.Group("/feedback")
	{
		feedback.GET("", middleware.OptionalAuth(jwtService), feedbackHandler.List)

		authed := feedback.Group("", middleware.RequireAuth(jwtService))
		{
			authed.POST("", feedbackHandler.Create)
			authed.PUT("/:id", feedbackHandler.Update)
			authed.DELETE("/:id", feedbackHandler.Delete)
			authed.POST("/:id/vote", feedbackHandler.ToggleVote)
		}
	}

	categories := api.Group("/categories")
	{
		categories.GET("", taxonomyHandler.ListCategories)
		categories.GET("/statuses", taxonomyHandler.ListStatuses)
		categories.POST("", middleware.RequireAuth(jwtService), taxonomyHandler.CreateCategory)
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}
