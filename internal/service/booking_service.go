package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

// BookingStore is the whole-collection record store for bookings.
// WriteAll must replace the collection atomically.
type BookingStore interface {
	ReadAll(ctx context.Context) ([]model.Booking, error)
	WriteAll(ctx context.Context, bookings []model.Booking) error
}

// EventPublisher publishes lifecycle events after a successful write.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Event routing keys.
const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingCancelled   = "booking.cancelled"
)

// BookingOptions configures a BookingService.
type BookingOptions struct {
	// MockMode labels confirmations as confirmed_mock and creates bookings
	// already mock-confirmed.
	MockMode bool

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// BookingService owns booking state transitions and history.
// Every mutation runs read-check-write under one mutex so two requests for the
// same slot can never both pass the conflict check.
type BookingService struct {
	mu       sync.Mutex
	store    BookingStore
	pub      EventPublisher
	mockMode bool
	now      func() time.Time
	newID    func() string
}

// NewBookingService creates a BookingService. pub may be nil.
func NewBookingService(store BookingStore, pub EventPublisher, opts BookingOptions) *BookingService {
	s := &BookingService{
		store:    store,
		pub:      pub,
		mockMode: opts.MockMode,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *BookingService) confirmedStatus() model.BookingStatus {
	if s.mockMode {
		return model.StatusConfirmedMock
	}
	return model.StatusConfirmed
}

// Create validates the request, checks the slot and appends a new booking.
// Returns:
//   - ErrValidation if a required field is blank or price is negative or not finite
//   - ErrConflict if an active booking already holds the slot
func (s *BookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if req == nil {
		return nil, newError(ErrValidation, "invalid request")
	}
	if missing := blankFields(
		"serviceId", req.ServiceID,
		"unitId", req.UnitID,
		"date", req.Date,
		"time", req.Time,
		"customerName", req.CustomerName,
	); len(missing) > 0 {
		return nil, newError(ErrValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	bookings, err := s.store.ReadAll(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, storeError("read bookings", err)
	}

	if HasConflict(bookings, req.UnitID, req.Date, req.Time, "") {
		s.mu.Unlock()
		return nil, newError(ErrConflict, "slot %s %s on unit %s is already booked", req.Date, req.Time, req.UnitID)
	}

	now := s.now().UTC()
	status := model.StatusPending
	if s.mockMode {
		status = model.StatusConfirmedMock
	}
	b := model.Booking{
		ID:           s.newID(),
		ServiceID:    req.ServiceID,
		ServiceName:  req.ServiceName,
		UnitID:       req.UnitID,
		UnitName:     req.UnitName,
		Date:         req.Date,
		Time:         req.Time,
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
		History: []model.HistoryEntry{{
			Timestamp: now,
			Actor:     model.ActorSystem,
			Action:    model.ActionCreated,
		}},
	}
	if req.Price != nil {
		p := *req.Price
		b.Price = &p
	}
	if code := strings.TrimSpace(req.CouponCode); code != "" {
		b.CouponCode = &code
	}

	if err := s.store.WriteAll(ctx, append(bookings, b)); err != nil {
		s.mu.Unlock()
		return nil, storeError("write bookings", err)
	}
	s.mu.Unlock()

	log.Info().
		Str("booking_id", b.ID).
		Str("unit_id", b.UnitID).
		Str("date", b.Date).
		Str("time", b.Time).
		Str("status", string(b.Status)).
		Msg("booking created")
	s.publish(ctx, EventBookingCreated, &b)

	out := b.Clone()
	return &out, nil
}

// Confirm marks a booking confirmed (or confirmed_mock in mock mode).
// Returns ErrNotFound for an unknown id and ErrInvalidState if it is cancelled.
func (s *BookingService) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.mutate(ctx, id, func(_ []model.Booking, b *model.Booking, now time.Time) error {
		if b.Status == model.StatusCancelled {
			return newError(ErrInvalidState, "booking %s is cancelled and cannot be confirmed", b.ID)
		}
		b.Status = s.confirmedStatus()
		appendHistory(b, now, model.ActorSystem, model.ActionConfirmed, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID).Str("status", string(b.Status)).Msg("booking confirmed")
	s.publish(ctx, EventBookingConfirmed, b)
	return b, nil
}

// Reschedule moves a booking to a new date and time, keeping its status.
// The booking's own slot never conflicts with itself.
// Returns:
//   - ErrValidation if date or time is blank
//   - ErrNotFound for an unknown id
//   - ErrInvalidState if the booking is cancelled
//   - ErrConflict if another active booking holds the new slot
func (s *BookingService) Reschedule(ctx context.Context, id, date, timeSlot string) (*model.Booking, error) {
	if missing := blankFields("date", date, "time", timeSlot); len(missing) > 0 {
		return nil, newError(ErrValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}

	b, err := s.mutate(ctx, id, func(all []model.Booking, b *model.Booking, now time.Time) error {
		if b.Status == model.StatusCancelled {
			return newError(ErrInvalidState, "booking %s is cancelled and cannot be rescheduled", b.ID)
		}
		if HasConflict(all, b.UnitID, date, timeSlot, b.ID) {
			return newError(ErrConflict, "slot %s %s on unit %s is already booked", date, timeSlot, b.UnitID)
		}
		note := fmt.Sprintf("from %s %s to %s %s", b.Date, b.Time, date, timeSlot)
		b.Date = date
		b.Time = timeSlot
		appendHistory(b, now, model.ActorUser, model.ActionRescheduled, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID).Str("date", b.Date).Str("time", b.Time).Msg("booking rescheduled")
	s.publish(ctx, EventBookingRescheduled, b)
	return b, nil
}

// Cancel marks a booking cancelled. Cancelling twice succeeds and records
// another history entry. Returns ErrNotFound for an unknown id.
func (s *BookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.mutate(ctx, id, func(_ []model.Booking, b *model.Booking, now time.Time) error {
		b.Status = model.StatusCancelled
		appendHistory(b, now, model.ActorUser, model.ActionCancelled, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID).Msg("booking cancelled")
	s.publish(ctx, EventBookingCancelled, b)
	return b, nil
}

// List returns every booking in insertion order.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read bookings", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

// Get returns one booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	bookings, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read bookings", err)
	}
	i := indexOf(bookings, id)
	if i < 0 {
		return nil, newError(ErrNotFound, "booking %s not found", id)
	}
	out := bookings[i].Clone()
	return &out, nil
}

// Analytics summarizes the current booking collection.
func (s *BookingService) Analytics(ctx context.Context) (*model.Analytics, error) {
	bookings, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read bookings", err)
	}
	out := Summarize(bookings)
	return &out, nil
}

// mutate loads the collection, applies fn to the booking with the given id
// and writes the whole collection back. fn sees the full collection so it can
// run the conflict check against the same snapshot that gets written.
func (s *BookingService) mutate(ctx context.Context, id string, fn func(all []model.Booking, b *model.Booking, now time.Time) error) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, storeError("read bookings", err)
	}

	i := indexOf(bookings, id)
	if i < 0 {
		return nil, newError(ErrNotFound, "booking %s not found", id)
	}

	now := s.now().UTC()
	b := bookings[i].Clone()
	if err := fn(bookings, &b, now); err != nil {
		return nil, err
	}
	b.UpdatedAt = now
	bookings[i] = b

	if err := s.store.WriteAll(ctx, bookings); err != nil {
		return nil, storeError("write bookings", err)
	}

	out := b.Clone()
	return &out, nil
}

func (s *BookingService) publish(ctx context.Context, key string, b *model.Booking) {
	if s.pub == nil {
		return
	}
	err := s.pub.PublishJSON(ctx, key, map[string]any{
		"booking_id": b.ID,
		"unit_id":    b.UnitID,
		"date":       b.Date,
		"time":       b.Time,
		"status":     b.Status,
	})
	if err != nil {
		log.Warn().Err(err).Str("event", key).Str("booking_id", b.ID).Msg("failed to publish booking event")
	}
}

func appendHistory(b *model.Booking, now time.Time, actor, action, note string) {
	b.History = append(b.History, model.HistoryEntry{
		Timestamp: now,
		Actor:     actor,
		Action:    action,
		Note:      note,
	})
}

func indexOf(bookings []model.Booking, id string) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// blankFields takes name/value pairs and returns the names whose value is blank.
func blankFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}
