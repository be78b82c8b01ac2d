package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

func TestSummarize(t *testing.T) {
	bookings := []model.Booking{
		{ID: "1", Status: model.StatusConfirmed, Price: floatPtr(200)},
		{ID: "2", Status: model.StatusConfirmedMock, Price: floatPtr(79.99)},
		{ID: "3", Status: model.StatusCancelled, Price: floatPtr(0.01)},
		{ID: "4", Status: model.StatusPending},
		{ID: "5", Status: model.StatusConfirmed, Price: floatPtr(0.1)},
		{ID: "6", Status: model.StatusPending, Price: floatPtr(0.2)},
	}

	got := Summarize(bookings)

	assert.Equal(t, 6, got.TotalBookings)
	assert.Equal(t, 2, got.Confirmed, "confirmed_mock is not counted as confirmed")
	assert.Equal(t, 1, got.Cancelled)
	// Revenue includes every priced booking, cancelled ones too, without float drift
	assert.Equal(t, 280.3, got.Revenue)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, model.Analytics{}, Summarize(nil))
}
