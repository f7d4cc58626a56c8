package v1

import (
	"errors"
	"net/http"

	"github.com/membergate/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondError maps service errors onto status codes. Unexpected
// errors are logged with detail but answered with a generic message so
// internals never leak to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrPasswordNotSet):
		respond(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrMobileTaken),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrAdminAlreadyExist):
		respond(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUpdateFailed):
		respond(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respond(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		respond(c, http.StatusBadRequest, "Validation error", out)
		return
	}

	respond(c, http.StatusBadRequest, "Validation error", nil)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "value is too short, minimum length is " + value
	case "max":
		return "value is too long, maximum length is " + value
	case "mobile":
		return "mobile number must be 10 digits"
	case "len":
		return "value must have length " + value
	}
	return tag
}
