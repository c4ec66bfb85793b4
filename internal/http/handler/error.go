package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"relatosapi/internal/http/middleware"
	"relatosapi/internal/logging"
	"relatosapi/internal/repository"
	"relatosapi/internal/service"
	"relatosapi/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *errorDetails `json:"details,omitempty"`
}

type errorDetails struct {
	Fields []validation.FieldError `json:"fields"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *fiber.Ctx, status int, code, message string, details *errorDetails) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps a service error onto the response taxonomy.
// Anything unrecognized is logged and reported as a bare 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return writeErrorDetails(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed",
			&errorDetails{Fields: ve.Fields})
	}

	switch {
	case errors.Is(err, repository.ErrInvalidReport):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "report rejected by store")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "report not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "attachment not found")
	}

	log := logging.Component("http")
	log.Error().
		Str("request_id", requestIDFromCtx(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Err(err).
		Msg("request failed")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusUnprocessableEntity:
			return writeError(c, status, "VALIDATION_ERROR", "validation failed")
		}

		if fiberErr == nil {
			return writeServiceError(c, err)
		}
		if status < fiber.StatusInternalServerError {
			return writeError(c, status, "BAD_REQUEST", "bad request")
		}
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
