package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-app/server/internal/middleware"
	"github.com/devconnect-app/server/internal/models"
	"github.com/devconnect-app/server/internal/services"
)

// Register creates an account and returns a session token.
func Register(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if !bindJSON(c, &input) {
			return
		}

		token, err := as.Register(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.TokenResponse{Token: token})
	}
}

// Login authenticates credentials and returns a session token.
func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.LoginInput
		if !bindJSON(c, &input) {
			return
		}

		token, err := as.Login(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.TokenResponse{Token: token})
	}
}

// GetCurrentUser returns the authenticated account without its password.
func GetCurrentUser(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		user, err := as.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
