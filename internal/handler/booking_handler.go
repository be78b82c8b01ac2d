package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/model"
	reqvalidator "github.com/fairyhunter13/court-booking-system/internal/validator"
)

// BookingServiceInterface defines the interface for booking business logic.
type BookingServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	Confirm(ctx context.Context, id string) (*model.Booking, error)
	Reschedule(ctx context.Context, id, date, timeSlot string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	Analytics(ctx context.Context) (*model.Analytics, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service   BookingServiceInterface
	validator *validator.Validate
}

// NewBookingHandler creates a new BookingHandler with the given service and validator.
func NewBookingHandler(svc BookingServiceInterface, v *validator.Validate) *BookingHandler {
	return &BookingHandler{service: svc, validator: v}
}

// Register mounts the booking routes on r.
func (h *BookingHandler) Register(r fiber.Router) {
	r.Get("/bookings", h.ListBookings)
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings/:id", h.GetBooking)
	r.Post("/bookings/:id/confirm", h.ConfirmBooking)
	r.Post("/bookings/:id/reschedule", h.RescheduleBooking)
	r.Post("/bookings/:id/cancel", h.CancelBooking)
	r.Get("/analytics", h.Analytics)
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req model.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, reqvalidator.Message(err))
	}

	booking, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, err, "failed to create booking")
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("booking_id", booking.ID).
		Str("unit_id", booking.UnitID).
		Msg("booking request accepted")

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.service.List(c.Context())
	if err != nil {
		return writeError(c, err, "failed to list bookings")
	}
	return c.JSON(bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "failed to get booking")
	}
	return c.JSON(booking)
}

// ConfirmBooking handles POST /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	booking, err := h.service.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "failed to confirm booking")
	}
	return c.JSON(booking)
}

// RescheduleBooking handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) RescheduleBooking(c *fiber.Ctx) error {
	var req model.RescheduleBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, reqvalidator.Message(err))
	}

	booking, err := h.service.Reschedule(c.Context(), c.Params("id"), req.Date, req.Time)
	if err != nil {
		return writeError(c, err, "failed to reschedule booking")
	}
	return c.JSON(booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	booking, err := h.service.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "failed to cancel booking")
	}
	return c.JSON(booking)
}

// Analytics handles GET /api/analytics.
func (h *BookingHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.service.Analytics(c.Context())
	if err != nil {
		return writeError(c, err, "failed to compute analytics")
	}
	return c.JSON(summary)
}
