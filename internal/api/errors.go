package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"workout-tracker/internal/service"
)

// ErrorResponse is the JSON envelope every failed request returns.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// abortWithError writes the error envelope and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    code,
		Error:     http.StatusText(code),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// bindingErrorMessage flattens a ShouldBindJSON error into one message.
// Field-level validation failures are joined with ", ".
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			messages[i] = fieldValidationMessage(fieldErr)
		}
		return strings.Join(messages, ", ")
	}
	return fmt.Sprintf("invalid request body: %v", err)
}

func fieldValidationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fieldErr.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// handleServiceError maps service-layer sentinel errors onto HTTP status
// codes. Anything unmapped is a 500 with a generic message so internals
// never leak to the client.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExerciseNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrNoVideo):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidVideoType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
