package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/container"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/handlers"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	authGate := middleware.AuthMiddleware(container.JWTSecret, container.Logger)
	loginLimiter := middleware.NewRateLimiter(1, 5, 10*time.Minute)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "event-manager-api",
			})
		})

		// Notification fan-out; clients receive every broadcast.
		api.GET("/ws", handlers.EventStream(container.Hub))

		auth := api.Group("/auth")
		{
			auth.POST("/register", loginLimiter.Middleware(), handlers.RegisterUser(container.UserService))
			auth.POST("/login", loginLimiter.Middleware(), handlers.LoginUser(container.UserService))

			auth.GET("/me", authGate, handlers.Me(container.UserService))
			auth.GET("/me/profile-picture", authGate, handlers.GetMyProfilePicture(container.UserService))
			auth.PUT("/me/profile-picture", authGate, handlers.UpdateMyProfilePicture(container.UserService))
			auth.DELETE("/me/profile-picture", authGate, handlers.DeleteMyProfilePicture(container.UserService))
		}

		users := api.Group("/users")
		{
			users.GET("/:id", handlers.GetUser(container.UserService))
			users.GET("/:id/profile-picture", handlers.GetUserProfilePicture(container.UserService))
		}

		events := api.Group("/events")
		{
			events.GET("", handlers.ListEvents(container.EventService))
			events.GET("/creator/:username", handlers.GetEventsByCreator(container.EventService))

			events.POST("", authGate, handlers.CreateEvent(container.EventService))
			events.GET("/my-events", authGate, handlers.GetMyEvents(container.EventService))

			events.GET("/:id", handlers.GetEvent(container.EventService))
			events.GET("/:id/image", handlers.GetEventImage(container.EventService))

			events.PUT("/:id", authGate, handlers.UpdateEvent(container.EventService))
			events.DELETE("/:id", authGate, handlers.DeleteEvent(container.EventService))
			events.DELETE("/:id/image", authGate, handlers.DeleteEventImage(container.EventService))

			events.POST("/:id/register", authGate, handlers.RegisterForEvent(container.RegistrationService))
			events.POST("/:id/unregister", authGate, handlers.UnregisterFromEvent(container.RegistrationService))
			events.GET("/:id/registration-status", authGate, handlers.GetRegistrationStatus(container.RegistrationService))
		}
	}

	return r
}
