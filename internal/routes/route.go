package routes

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devconnect-app/server/internal/container"
	"github.com/devconnect-app/server/internal/handlers"
	"github.com/devconnect-app/server/internal/middleware"
	"github.com/devconnect-app/server/internal/models"
)

// errorLogger logs errors recorded on the context during request handling.
func errorLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			requestID, _ := c.Get("request_id")
			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}
	}
}

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(ctn *container.Container) *gin.Engine {
	if ctn.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     ctn.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(ctn.Logger))
	r.Use(errorLogger(ctn.Logger))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(ctn.TokenService)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "devconnect-api",
		})
	})

	// registration
	api.POST("/users", handlers.Register(ctn.AuthService))

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("", handlers.Login(ctn.AuthService))
		authRoutes.GET("", auth, handlers.GetCurrentUser(ctn.AuthService))
	}

	profileRoutes := api.Group("/profile")
	{
		// public
		profileRoutes.GET("", handlers.ListProfiles(ctn.ProfileService))
		profileRoutes.GET("/user/:id", handlers.GetProfileByUser(ctn.ProfileService))

		// owner-only
		profileRoutes.GET("/me", auth, handlers.GetMyProfile(ctn.ProfileService))
		profileRoutes.POST("", auth, handlers.UpsertProfile(ctn.ProfileService))
		profileRoutes.DELETE("", auth, handlers.DeleteAccount(ctn.ProfileService))
		profileRoutes.PUT("/experience", auth, handlers.AddExperience(ctn.ProfileService))
		profileRoutes.DELETE("/experience/:id", auth, handlers.DeleteExperience(ctn.ProfileService))
		profileRoutes.PUT("/education", auth, handlers.AddEducation(ctn.ProfileService))
		profileRoutes.DELETE("/education/:id", auth, handlers.DeleteEducation(ctn.ProfileService))
	}

	postRoutes := api.Group("/posts")
	postRoutes.Use(auth)
	{
		postRoutes.POST("", handlers.CreatePost(ctn.PostService))
		postRoutes.GET("", handlers.ListPosts(ctn.PostService))
		postRoutes.GET("/:id", handlers.GetPost(ctn.PostService))
		postRoutes.DELETE("/:id", handlers.DeletePost(ctn.PostService))
		postRoutes.PUT("/likes/:id", handlers.LikePost(ctn.PostService))
		postRoutes.PUT("/unlikes/:id", handlers.UnlikePost(ctn.PostService))
		postRoutes.POST("/comment/:id", handlers.AddComment(ctn.PostService))
		postRoutes.DELETE("/comment/:postId/:commentId", handlers.DeleteComment(ctn.PostService))
	}

	// SPA fallback: serve the built client for unmatched non-API paths.
	if ctn.Config.IsProduction() {
		clientDir := ctn.Config.ClientDir
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, models.Msg("Not found"))
				return
			}
			file := filepath.Join(clientDir, filepath.Clean(c.Request.URL.Path))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
			c.File(filepath.Join(clientDir, "index.html"))
		})
	}

	return r
}
