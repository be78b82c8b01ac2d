package service

import (
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

// Summarize folds the booking collection into counts and revenue.
// Confirmed counts only StatusConfirmed; demo confirmations are not included.
// Revenue sums every non-null price whatever the status.
func Summarize(bookings []model.Booking) model.Analytics {
	out := model.Analytics{TotalBookings: len(bookings)}
	revenue := decimal.Zero
	for _, b := range bookings {
		switch b.Status {
		case model.StatusConfirmed:
			out.Confirmed++
		case model.StatusCancelled:
			out.Cancelled++
		}
		if b.Price != nil {
			revenue = revenue.Add(decimal.NewFromFloat(*b.Price))
		}
	}
	out.Revenue = revenue.InexactFloat64()
	return out
}
