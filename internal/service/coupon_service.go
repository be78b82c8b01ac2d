package service

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

// CouponStore is the whole-collection record store for the coupon catalog.
// ReadAll seeds the default catalog when the store is empty or absent.
type CouponStore interface {
	ReadAll(ctx context.Context) ([]model.Coupon, error)
	WriteAll(ctx context.Context, coupons []model.Coupon) error
}

// CouponService validates coupon codes and computes discounted prices.
// It reads the catalog but only RecordUse writes to it.
type CouponService struct {
	mu    sync.Mutex
	store CouponStore
}

// NewCouponService creates a new CouponService backed by the given store.
func NewCouponService(store CouponStore) *CouponService {
	return &CouponService{store: store}
}

// List returns the catalog without usage bookkeeping.
func (s *CouponService) List(ctx context.Context) ([]model.PublicCoupon, error) {
	coupons, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read coupons", err)
	}
	out := make([]model.PublicCoupon, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, c.Public())
	}
	return out, nil
}

// Validate looks up code case-insensitively and applies it to originalPrice.
// It does not count a use; see RecordUse.
// Returns:
//   - ErrValidation if code is blank or originalPrice is negative or not finite
//   - ErrNotFound if no coupon matches
//   - ErrExhausted if the coupon reached its usage ceiling
func (s *CouponService) Validate(ctx context.Context, code string, originalPrice float64) (*model.CouponValidation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, newError(ErrValidation, "coupon code is required")
	}
	if err := checkPrice(originalPrice); err != nil {
		return nil, err
	}

	coupons, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read coupons", err)
	}

	var coupon *model.Coupon
	for i := range coupons {
		if coupons[i].Code == code {
			coupon = &coupons[i]
			break
		}
	}
	if coupon == nil {
		return nil, newError(ErrNotFound, "coupon %s not found", code)
	}
	if coupon.Exhausted() {
		return nil, newError(ErrExhausted, "coupon %s has reached its usage limit", code)
	}

	return &model.CouponValidation{
		FinalPrice: ApplyDiscount(coupon.Type, coupon.Amount, originalPrice),
		Coupon: model.CouponEcho{
			Code:   coupon.Code,
			Type:   coupon.Type,
			Amount: coupon.Amount,
		},
	}, nil
}

// RecordUse counts one redemption of the coupon with the given id.
// Returns ErrNotFound for an unknown id and ErrExhausted at the ceiling.
func (s *CouponService) RecordUse(ctx context.Context, couponID string) (*model.PublicCoupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupons, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read coupons", err)
	}

	i := -1
	for j := range coupons {
		if coupons[j].ID == couponID {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, newError(ErrNotFound, "coupon %s not found", couponID)
	}
	if coupons[i].Exhausted() {
		return nil, newError(ErrExhausted, "coupon %s has reached its usage limit", coupons[i].Code)
	}

	coupons[i].Used++
	if err := s.store.WriteAll(ctx, coupons); err != nil {
		return nil, storeError("write coupons", err)
	}

	log.Info().
		Str("coupon_id", couponID).
		Str("code", coupons[i].Code).
		Int("used", coupons[i].Used).
		Msg("coupon use recorded")

	out := coupons[i].Public()
	return &out, nil
}

// ApplyDiscount computes the discounted price rounded to cents, half away from zero.
// Percent takes amount% off, fixed subtracts amount but never goes below zero,
// and any other type returns the original price, as does a non-finite input.
func ApplyDiscount(typ model.CouponType, amount, originalPrice float64) float64 {
	if !finite(amount) || !finite(originalPrice) {
		return originalPrice
	}
	original := decimal.NewFromFloat(originalPrice)
	off := decimal.NewFromFloat(amount)

	final := original
	switch typ {
	case model.CouponPercent:
		final = original.Sub(original.Mul(off).Div(decimal.NewFromInt(100)))
	case model.CouponFixed:
		final = decimal.Max(decimal.Zero, original.Sub(off))
	}
	return final.Round(2).InexactFloat64()
}

// checkPrice rejects negative, NaN and infinite prices.
func checkPrice(p float64) error {
	if !finite(p) {
		return newError(ErrValidation, "price must be a finite number")
	}
	if p < 0 {
		return newError(ErrValidation, "price must not be negative")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
