package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, no_sessions, unavailable, internal_error
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errFromDomain maps domain sentinels onto HTTP statuses. A day without sessions is
// a 404 carrying the user-facing message rather than the wrapped error chain.
func errFromDomain(c *fiber.Ctx, err error, day string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNoSessions):
		return newError(c, fiber.StatusNotFound, "no_sessions", noSessionsMessage(day))
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, domain.ErrLoadFailed):
		logging.FromContext(c.UserContext()).Error("schedule unavailable", "error", err)
		return newError(c, fiber.StatusServiceUnavailable, "unavailable", "schedule could not be loaded")
	default:
		logging.FromContext(c.UserContext()).Error("request failed", "error", err)
		return errInternal(c, "internal server error")
	}
}

func noSessionsMessage(day string) string {
	return domain.NoSessionsMessage(domain.ParseWeekday(day))
}
