package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/model"
	"github.com/fairyhunter13/court-booking-system/pkg/database"
)

// CouponRepository stores the coupon catalog in PostgreSQL.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a new CouponRepository with a custom pool interface.
// This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const insertCoupon = `INSERT INTO coupons (position, id, code, type, amount, max_uses, used)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// seedCoupon leaves rows written by a concurrent seeder untouched.
const seedCoupon = insertCoupon + ` ON CONFLICT DO NOTHING`

// ReadAll returns the catalog in insertion order.
// An empty table is seeded with DefaultCoupons first.
func (r *CouponRepository) ReadAll(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := r.selectAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(coupons) > 0 {
		return coupons, nil
	}

	if err := r.seed(ctx); err != nil {
		return nil, fmt.Errorf("seed coupons: %w", err)
	}
	return r.selectAll(ctx)
}

// seed inserts DefaultCoupons without clearing the table, so two first reads
// racing on an empty table both succeed.
func (r *CouponRepository) seed(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, c := range DefaultCoupons() {
		_, err := tx.Exec(ctx, seedCoupon, i, c.ID, c.Code, string(c.Type), c.Amount, c.MaxUses, c.Used)
		if err != nil {
			return fmt.Errorf("insert coupon %s: %w", c.Code, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("records", len(DefaultCoupons())).Msg("seeded coupon catalog")
	return nil
}

// WriteAll replaces the coupons table with the given catalog in one transaction.
func (r *CouponRepository) WriteAll(ctx context.Context, coupons []model.Coupon) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	if _, err := tx.Exec(ctx, `DELETE FROM coupons`); err != nil {
		return fmt.Errorf("clear coupons: %w", err)
	}
	for i, c := range coupons {
		if err := insertCouponRow(ctx, tx, i, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit coupons: %w", err)
	}
	return nil
}

// Ping reports whether the coupons table is reachable.
func (r *CouponRepository) Ping(ctx context.Context) error {
	rows, err := r.pool.Query(ctx, `SELECT 1 FROM coupons LIMIT 1`)
	if err != nil {
		return fmt.Errorf("ping coupons: %w", err)
	}
	rows.Close()
	return rows.Err()
}

func (r *CouponRepository) selectAll(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, type, amount, max_uses, used FROM coupons ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		var (
			c   model.Coupon
			typ string
		)
		if err := rows.Scan(&c.ID, &c.Code, &typ, &c.Amount, &c.MaxUses, &c.Used); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		c.Type = model.CouponType(typ)
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupon rows: %w", err)
	}
	return coupons, nil
}

func insertCouponRow(ctx context.Context, tx database.TxQuerier, position int, c model.Coupon) error {
	_, err := tx.Exec(ctx, insertCoupon, position, c.ID, c.Code, string(c.Type), c.Amount, c.MaxUses, c.Used)
	if err != nil {
		return fmt.Errorf("insert coupon %s: %w", c.Code, err)
	}
	return nil
}
