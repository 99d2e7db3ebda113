// Package errors maps domain errors onto sanitized HTTP responses. Internal
// details are logged, never returned to clients.
package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/models"
)

var log = logger.Default()

// Respond translates any error into the uniform error envelope. Domain
// error messages are user-facing; everything else collapses to a generic
// internal error.
func Respond(c echo.Context, err error) error {
	de, ok := err.(*domain.DomainError)
	if !ok {
		log.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred. Please try again later.",
		})
	}

	status := statusFor(de.Code)
	if status >= 500 {
		log.Error("request failed", "path", c.Request().URL.Path, "code", de.Code, "error", err)
	}

	return c.JSON(status, models.ErrorResponse{
		Error:   codeLabel(de.Code),
		Message: de.Message,
	})
}

// ValidationError returns a generic validation error without exposing
// validator internals.
func ValidationError(c echo.Context, err error) error {
	log.Warn("validation failed", "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// BadRequest returns a 400 with the given safe message.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func statusFor(code string) int {
	switch code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidation, domain.ErrCodeBadRequest, domain.ErrCodeMalformedOutput:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeConflict:
		return http.StatusConflict
	case domain.ErrCodeGenerationUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrCodeTotalFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func codeLabel(code string) string {
	switch code {
	case domain.ErrCodeNotFound:
		return "not_found"
	case domain.ErrCodeValidation:
		return "validation_error"
	case domain.ErrCodeBadRequest:
		return "bad_request"
	case domain.ErrCodeUnauthorized:
		return "unauthorized"
	case domain.ErrCodeForbidden:
		return "forbidden"
	case domain.ErrCodeConflict:
		return "conflict"
	case domain.ErrCodeGenerationUnavailable:
		return "generation_unavailable"
	case domain.ErrCodeMalformedOutput:
		return "malformed_output"
	case domain.ErrCodeTotalFailure:
		return "generation_failed"
	default:
		return "internal_error"
	}
}
