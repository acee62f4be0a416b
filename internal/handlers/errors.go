package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
)

// respondError maps the service error taxonomy to HTTP responses. Unknown
// errors are attached to the context so the error middleware logs them and
// returns a redacted 500.
func respondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrNotFoundOrUnauthorized):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrDuplicateUsername),
		errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrSelfRegistration):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrAlreadyRegistered),
		errors.Is(err, models.ErrNotRegistered),
		errors.Is(err, models.ErrEventStarted),
		errors.Is(err, models.ErrNoImage):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	default:
		c.Error(err)
	}
}
