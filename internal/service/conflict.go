package service

import "github.com/fairyhunter13/court-booking-system/internal/model"

// HasConflict reports whether an active booking other than excludeID already
// holds the (unitID, date, timeSlot) slot. Pass an empty excludeID to check
// every booking.
func HasConflict(bookings []model.Booking, unitID, date, timeSlot, excludeID string) bool {
	for _, b := range bookings {
		if !b.Status.Active() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.UnitID == unitID && b.Date == date && b.Time == timeSlot {
			return true
		}
	}
	return false
}
