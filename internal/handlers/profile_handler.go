package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/middleware"
	"github.com/devconnect-app/server/internal/models"
	"github.com/devconnect-app/server/internal/services"
)

func GetMyProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		profile, err := ps.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpsertProfile creates the caller's profile or updates it in place.
func UpsertProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		var input services.ProfileInput
		if !bindJSON(c, &input) {
			return
		}

		profile, err := ps.Upsert(c.Request.Context(), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func ListProfiles(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := ps.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profiles)
	}
}

func GetProfileByUser(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := ps.ByUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, apperr.ErrProfileNotFound) {
				c.JSON(http.StatusBadRequest, models.Msg("Profile not found"))
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// DeleteAccount removes the caller's profile, account and posts.
func DeleteAccount(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		if err := ps.DeleteAccount(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Msg("user removed"))
	}
}

func AddExperience(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		var input services.ExperienceInput
		if !bindJSON(c, &input) {
			return
		}

		profile, err := ps.AddExperience(c.Request.Context(), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func DeleteExperience(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		profile, err := ps.RemoveExperience(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func AddEducation(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		var input services.EducationInput
		if !bindJSON(c, &input) {
			return
		}

		profile, err := ps.AddEducation(c.Request.Context(), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func DeleteEducation(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		profile, err := ps.RemoveEducation(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
