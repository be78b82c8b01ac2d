package repository

import (
	"strings"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

// defaultSports are the facilities that get a 20% launch coupon.
var defaultSports = []string{"badminton", "tennis", "futsal", "basketball", "volleyball"}

// unlimitedUses is the ceiling given to seeded coupons.
const unlimitedUses = 9999

// DefaultCoupons returns the catalog written when the coupon store is empty.
func DefaultCoupons() []model.Coupon {
	out := make([]model.Coupon, 0, len(defaultSports))
	for _, sport := range defaultSports {
		code := strings.ToUpper(sport) + "20"
		out = append(out, model.Coupon{
			ID:      "coupon-" + sport,
			Code:    code,
			Type:    model.CouponPercent,
			Amount:  20,
			MaxUses: unlimitedUses,
			Used:    0,
		})
	}
	return out
}
