package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/court-booking-system/internal/model"
	"github.com/fairyhunter13/court-booking-system/pkg/database"
)

// PoolInterface defines the database operations needed by the postgres stores.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BookingRepository stores the booking collection in PostgreSQL.
type BookingRepository struct {
	pool PoolInterface
}

// NewBookingRepository creates a new BookingRepository with the given pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// NewBookingRepositoryWithPool creates a new BookingRepository with a custom pool interface.
// This is primarily used for testing.
func NewBookingRepositoryWithPool(pool PoolInterface) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const selectBookings = `SELECT id, service_id, service_name, unit_id, unit_name, date, time,
	customer_name, contact, price, coupon_code, status, confirmation_code,
	created_at, updated_at, history
FROM bookings ORDER BY position`

const insertBooking = `INSERT INTO bookings (position, id, service_id, service_name, unit_id, unit_name,
	date, time, customer_name, contact, price, coupon_code, status, confirmation_code,
	created_at, updated_at, history)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17::jsonb)`

// ReadAll returns every booking in insertion order.
// On success, returns an empty slice (not nil) when the table is empty.
func (r *BookingRepository) ReadAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, selectBookings)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var (
			b       model.Booking
			status  string
			history []byte
		)
		if err := rows.Scan(
			&b.ID, &b.ServiceID, &b.ServiceName, &b.UnitID, &b.UnitName, &b.Date, &b.Time,
			&b.CustomerName, &b.Contact, &b.Price, &b.CouponCode, &status, &b.ConfirmationCode,
			&b.CreatedAt, &b.UpdatedAt, &history,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = model.BookingStatus(status)
		if len(history) > 0 {
			if err := json.Unmarshal(history, &b.History); err != nil {
				return nil, fmt.Errorf("decode history of booking %s: %w", b.ID, err)
			}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

// WriteAll replaces the bookings table with the given collection in one transaction.
func (r *BookingRepository) WriteAll(ctx context.Context, bookings []model.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("clear bookings: %w", err)
	}
	for i, b := range bookings {
		if err := insertBookingRow(ctx, tx, i, b); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bookings: %w", err)
	}
	return nil
}

// Ping reports whether the bookings table is reachable.
func (r *BookingRepository) Ping(ctx context.Context) error {
	rows, err := r.pool.Query(ctx, `SELECT 1 FROM bookings LIMIT 1`)
	if err != nil {
		return fmt.Errorf("ping bookings: %w", err)
	}
	rows.Close()
	return rows.Err()
}

func insertBookingRow(ctx context.Context, tx database.TxQuerier, position int, b model.Booking) error {
	history := b.History
	if history == nil {
		history = []model.HistoryEntry{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history of booking %s: %w", b.ID, err)
	}

	_, err = tx.Exec(ctx, insertBooking,
		position, b.ID, b.ServiceID, b.ServiceName, b.UnitID, b.UnitName,
		b.Date, b.Time, b.CustomerName, b.Contact, b.Price, b.CouponCode, string(b.Status), b.ConfirmationCode,
		b.CreatedAt, b.UpdatedAt, string(encoded))
	if err != nil {
		return fmt.Errorf("insert booking %s: %w", b.ID, err)
	}
	return nil
}
