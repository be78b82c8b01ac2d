package model

// CouponType selects the discount policy of a coupon.
type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// Coupon is a catalog entry. Code is stored uppercase.
// MaxUses of zero means no ceiling.
type Coupon struct {
	ID      string     `json:"id"`
	Code    string     `json:"code"`
	Type    CouponType `json:"type"`
	Amount  float64    `json:"amount"`
	MaxUses int        `json:"maxUses"`
	Used    int        `json:"used"`
}

// Exhausted reports whether the usage ceiling has been reached.
func (c Coupon) Exhausted() bool {
	return c.MaxUses > 0 && c.Used >= c.MaxUses
}

// Public strips catalog bookkeeping fields.
func (c Coupon) Public() PublicCoupon {
	return PublicCoupon{ID: c.ID, Code: c.Code, Type: c.Type, Amount: c.Amount}
}

// PublicCoupon is the API response DTO for GET /api/coupons.
type PublicCoupon struct {
	ID     string     `json:"id"`
	Code   string     `json:"code"`
	Type   CouponType `json:"type"`
	Amount float64    `json:"amount"`
}

// CouponEcho is the part of a coupon returned from validation.
type CouponEcho struct {
	Code   string     `json:"code"`
	Type   CouponType `json:"type"`
	Amount float64    `json:"amount"`
}

// CouponValidation is the result of applying a coupon to a price.
type CouponValidation struct {
	FinalPrice float64    `json:"finalPrice"`
	Coupon     CouponEcho `json:"coupon"`
}

// ValidateCouponRequest is the DTO for POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code  string   `json:"code" validate:"required,notblank,max=64"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}
