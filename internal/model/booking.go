package model

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusConfirmedMock BookingStatus = "confirmed_mock"
	StatusCancelled     BookingStatus = "cancelled"
)

// Active reports whether a booking in this status occupies its slot.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled
}

// History actors and actions.
const (
	ActorSystem = "system"
	ActorUser   = "user"

	ActionCreated     = "created"
	ActionConfirmed   = "confirmed"
	ActionRescheduled = "rescheduled"
	ActionCancelled   = "cancelled"
)

// HistoryEntry is one audit record of a lifecycle event.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Note      string    `json:"note"`
}

// Booking is a reservation of a unit for a date and start time.
// Date (YYYY-MM-DD) and Time (HH:mm) are opaque tokens compared by equality.
type Booking struct {
	ID               string         `json:"id"`
	ServiceID        string         `json:"serviceId"`
	ServiceName      string         `json:"serviceName"`
	UnitID           string         `json:"unitId"`
	UnitName         string         `json:"unitName"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	CustomerName     string         `json:"customerName"`
	Contact          string         `json:"contact"`
	Price            *float64       `json:"price"`
	CouponCode       *string        `json:"couponCode"`
	Status           BookingStatus  `json:"status"`
	ConfirmationCode *string        `json:"confirmationCode"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	History          []HistoryEntry `json:"history"`
}

// Clone returns a deep copy so callers never share the history slice or
// pointer fields with the stored collection.
func (b Booking) Clone() Booking {
	out := b
	if b.Price != nil {
		p := *b.Price
		out.Price = &p
	}
	if b.CouponCode != nil {
		c := *b.CouponCode
		out.CouponCode = &c
	}
	if b.ConfirmationCode != nil {
		c := *b.ConfirmationCode
		out.ConfirmationCode = &c
	}
	out.History = append([]HistoryEntry(nil), b.History...)
	return out
}

// CreateBookingRequest is the DTO for creating a booking.
type CreateBookingRequest struct {
	ServiceID    string   `json:"serviceId" validate:"required,notblank,max=255"`
	ServiceName  string   `json:"serviceName" validate:"max=255"`
	UnitID       string   `json:"unitId" validate:"required,notblank,max=255"`
	UnitName     string   `json:"unitName" validate:"max=255"`
	Date         string   `json:"date" validate:"required,notblank,max=32"`
	Time         string   `json:"time" validate:"required,notblank,max=32"`
	CustomerName string   `json:"customerName" validate:"required,notblank,max=255"`
	Contact      string   `json:"contact" validate:"max=255"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	CouponCode   string   `json:"couponCode" validate:"max=64"`
}

// RescheduleBookingRequest is the DTO for moving a booking to another slot.
type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required,notblank,max=32"`
	Time string `json:"time" validate:"required,notblank,max=32"`
}

// Analytics is the rollup returned by GET /api/analytics.
type Analytics struct {
	TotalBookings int     `json:"totalBookings"`
	Confirmed     int     `json:"confirmed"`
	Cancelled     int     `json:"cancelled"`
	Revenue       float64 `json:"revenue"`
}
