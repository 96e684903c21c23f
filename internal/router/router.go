package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/join-board-api/internal/config"
	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/handlers"
	"github.com/yukikurage/join-board-api/internal/middleware"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Contact *handlers.ContactHandler
	Task    *handlers.TaskHandler
	Health  *handlers.HealthHandler
}

// Register wires routes and middleware.
func Register(r *gin.Engine, cfg *config.Config, logger *zap.Logger, auth middleware.Authenticator, h Handlers) {
	r.Use(middleware.RequestID())
	r.Use(middleware.GinZapMiddleware(logger))
	r.Use(gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}
	r.Use(middleware.LanguageMiddleware())

	// Health check endpoint
	r.GET("/health", h.Health.CheckHealth)

	requireAuth := middleware.RequireAuth(auth)
	requireID := middleware.RequireResourceID()

	api := r.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register/", h.Auth.Register)
			authGroup.POST("/login/", h.Auth.Login)
			authGroup.POST("/guest-login/", h.Auth.GuestLogin)
			authGroup.POST("/logout/", requireAuth, h.Auth.Logout)
			authGroup.GET("/me/", requireAuth, h.Auth.GetCurrentUser)
		}

		// Contact routes (protected)
		contacts := api.Group("/contacts")
		contacts.Use(requireAuth)
		{
			contacts.GET("/", h.Contact.ListContacts)
			contacts.POST("/", h.Contact.CreateContact)
			contacts.GET("/:id/", requireID, h.Contact.GetContact)
			contacts.PUT("/:id/", requireID, h.Contact.UpdateContact)
			contacts.PATCH("/:id/", requireID, h.Contact.PartialUpdateContact)
			contacts.DELETE("/:id/", requireID, h.Contact.DeleteContact)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/", h.Task.ListTasks)
			tasks.POST("/", h.Task.CreateTask)
			tasks.GET("/:id/", requireID, h.Task.GetTask)
			tasks.PUT("/:id/", requireID, h.Task.UpdateTask)
			tasks.PATCH("/:id/", requireID, h.Task.PartialUpdateTask)
			tasks.DELETE("/:id/", requireID, h.Task.DeleteTask)
			tasks.PATCH("/:id/update_status/", requireID, h.Task.UpdateStatus)
			tasks.PATCH("/:id/toggle_subtask/", requireID, h.Task.ToggleSubtask)
		}
	}
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
