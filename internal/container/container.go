package container

import (
	"log/slog"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger              *slog.Logger
	MongoDBClient       *mongo.Client
	Hub                 *notify.Hub
	JWTSecret           string
	AllowedOrigins      []string
	UserService         *services.UserService
	EventService        *services.EventService
	RegistrationService *services.RegistrationService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	dbName string,
	jwtSecret string,
	allowedOrigins []string,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, dbName)
	hub := notify.NewHub(logger)

	userService := services.NewUserService(repo, jwtSecret)
	eventService := services.NewEventService(repo, repo, hub)
	registrationService := services.NewRegistrationService(repo, repo, hub)

	return &Container{
		Logger:              logger,
		MongoDBClient:       mongoDBClient,
		Hub:                 hub,
		JWTSecret:           jwtSecret,
		AllowedOrigins:      allowedOrigins,
		UserService:         userService,
		EventService:        eventService,
		RegistrationService: registrationService,
	}
}
