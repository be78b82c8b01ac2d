package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/service"
)

// kindNames maps service error kinds to the "kind" field of error responses.
var kindNames = map[error]string{
	service.ErrValidation:   "validation",
	service.ErrConflict:     "conflict",
	service.ErrNotFound:     "not_found",
	service.ErrInvalidState: "invalid_state",
	service.ErrExhausted:    "exhausted",
	service.ErrStore:        "store",
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation), errors.Is(kind, service.ErrExhausted):
		return fiber.StatusBadRequest
	case errors.Is(kind, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, service.ErrConflict), errors.Is(kind, service.ErrInvalidState):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a service error as {"error": message, "kind": kind}.
// Store failures and unknown errors are logged and hidden behind a generic message.
func writeError(c *fiber.Ctx, err error, msg string) error {
	kind := service.KindOf(err)
	status := statusFor(kind)

	if status == fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(msg)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error", "kind": "store"})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": service.MessageOf(err),
		"kind":  kindNames[kind],
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "kind": "validation"})
}
