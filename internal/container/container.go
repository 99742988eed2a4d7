package container

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect-app/server/internal/config"
	"github.com/devconnect-app/server/internal/helpers"
	"github.com/devconnect-app/server/internal/models"
	"github.com/devconnect-app/server/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	MongoDBClient  *mongo.Client
	TokenService   *helpers.TokenService
	AuthService    *services.AuthService
	ProfileService *services.ProfileService
	PostService    *services.PostService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, mongoDBClient *mongo.Client) *Container {
	mdb := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	tokens := helpers.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	authService := services.NewAuthService(mdb, tokens)
	profileService := services.NewProfileService(mdb, mdb, mdb, mdb)
	postService := services.NewPostService(mdb, mdb)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		TokenService:   tokens,
		AuthService:    authService,
		ProfileService: profileService,
		PostService:    postService,
	}
}
