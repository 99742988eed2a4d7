package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/models"
)

// respondError writes the JSON error shape for a domain error: validation
// failures as a field list, known errors as {msg}, everything else as an
// opaque 500. Unexpected errors are recorded on the context for the logger.
func respondError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, models.Errors(ve.Fields))
		return
	}

	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.Msg("Server error"))
		return
	}

	c.JSON(status, models.Msg(err.Error()))
}

// bindJSON decodes the request body, mapping a malformed payload to the
// same 400 shape validation failures use.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, models.Errors([]apperr.FieldError{
			{Field: "body", Message: "Invalid request body"},
		}))
		return false
	}
	return true
}
