package repository

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/court-booking-system/pkg/database"
)

// schema creates the tables used by the postgres stores.
// position keeps insertion order; the partial unique index backs the
// one-active-booking-per-slot rule at the database level.
const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	position          BIGINT           NOT NULL,
	id                TEXT             PRIMARY KEY,
	service_id        TEXT             NOT NULL,
	service_name      TEXT             NOT NULL DEFAULT '',
	unit_id           TEXT             NOT NULL,
	unit_name         TEXT             NOT NULL DEFAULT '',
	date              TEXT             NOT NULL,
	time              TEXT             NOT NULL,
	customer_name     TEXT             NOT NULL,
	contact           TEXT             NOT NULL DEFAULT '',
	price             DOUBLE PRECISION,
	coupon_code       TEXT,
	status            TEXT             NOT NULL,
	confirmation_code TEXT,
	created_at        TIMESTAMPTZ      NOT NULL,
	updated_at        TIMESTAMPTZ      NOT NULL,
	history           JSONB            NOT NULL DEFAULT '[]'
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
	ON bookings (unit_id, date, time) WHERE status <> 'cancelled';

CREATE TABLE IF NOT EXISTS coupons (
	position BIGINT           NOT NULL,
	id       TEXT             PRIMARY KEY,
	code     TEXT             NOT NULL UNIQUE,
	type     TEXT             NOT NULL,
	amount   DOUBLE PRECISION NOT NULL,
	max_uses INTEGER          NOT NULL DEFAULT 0,
	used     INTEGER          NOT NULL DEFAULT 0
);
`

// EnsureSchema creates the booking and coupon tables if they do not exist.
func EnsureSchema(ctx context.Context, db database.TxQuerier) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
