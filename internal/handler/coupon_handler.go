package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/model"
	reqvalidator "github.com/fairyhunter13/court-booking-system/internal/validator"
)

// CouponServiceInterface defines the interface for coupon business logic.
type CouponServiceInterface interface {
	List(ctx context.Context) ([]model.PublicCoupon, error)
	Validate(ctx context.Context, code string, originalPrice float64) (*model.CouponValidation, error)
	RecordUse(ctx context.Context, couponID string) (*model.PublicCoupon, error)
}

// CouponHandler handles HTTP requests for coupon operations.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// Register mounts the coupon routes on r.
func (h *CouponHandler) Register(r fiber.Router) {
	r.Get("/coupons", h.ListCoupons)
	r.Post("/coupons/validate", h.ValidateCoupon)
	r.Post("/coupons/:id/use", h.RecordUse)
}

// ListCoupons handles GET /api/coupons.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List(c.Context())
	if err != nil {
		return writeError(c, err, "failed to list coupons")
	}
	return c.JSON(coupons)
}

// ValidateCoupon handles POST /api/coupons/validate.
func (h *CouponHandler) ValidateCoupon(c *fiber.Ctx) error {
	var req model.ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, reqvalidator.Message(err))
	}

	result, err := h.service.Validate(c.Context(), req.Code, *req.Price)
	if err != nil {
		return writeError(c, err, "failed to validate coupon")
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("code", result.Coupon.Code).
		Float64("original_price", *req.Price).
		Float64("final_price", result.FinalPrice).
		Msg("coupon validated")

	return c.JSON(result)
}

// RecordUse handles POST /api/coupons/:id/use.
func (h *CouponHandler) RecordUse(c *fiber.Ctx) error {
	coupon, err := h.service.RecordUse(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "failed to record coupon use")
	}
	return c.JSON(coupon)
}
