package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/helpers"
	"github.com/devconnect-app/server/internal/models"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService is the credential service: it owns password hashing, token
// issuance and the register/login flows.
type AuthService struct {
	userRepo models.UserRepo
	tokens   *helpers.TokenService
}

func NewAuthService(userRepo models.UserRepo, tokens *helpers.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates an account with a hashed password and a gravatar snapshot
// and returns a session token.
func (as *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if err := models.Validate.Struct(input); err != nil {
		return "", helpers.ValidationError(err)
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Avatar:   helpers.GravatarURL(input.Email),
	}

	created, err := as.userRepo.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	return as.tokens.Issue(created.ID.Hex())
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := models.Validate.Struct(input); err != nil {
		return "", helpers.ValidationError(err)
	}

	user, err := as.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}

	if !helpers.VerifyPassword(input.Password, user.Password) {
		return "", apperr.ErrInvalidCredentials
	}

	return as.tokens.Issue(user.ID.Hex())
}

// CurrentUser resolves the authenticated identity to its account document.
// A valid token whose account has since been deleted resolves to
// apperr.ErrUserNotFound, which the API reports as a 400.
func (as *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return as.userRepo.GetUserByID(ctx, userID)
}
