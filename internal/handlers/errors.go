package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/DonArtkins/kuja-twende-adventures/internal/middleware"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

// respondError translates domain errors into status codes. Anything not
// recognised is logged and reported as a generic 500.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
	case errors.Is(err, repository.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "A destination with this title already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": transitionMessage(err)})
	case errors.Is(err, repository.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, repository.ErrDestinationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.log.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFrom(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func transitionMessage(err error) string {
	_, detail, found := strings.Cut(err.Error(), ": ")
	if !found {
		return "Booking status change not allowed"
	}
	return "Booking status cannot change from " + detail
}

// respondBindError reports malformed request bodies as validation failures.
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldMessage(fieldErrs[0])})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "A valid email address is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case difficultyTag:
		return fmt.Sprintf("Unknown difficulty %q", fmt.Sprint(fe.Value()))
	case bookingStatusTag:
		return fmt.Sprintf("Unknown booking status %q", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
