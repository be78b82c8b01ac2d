package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/court-booking-system/internal/model"
)

// FileCollection stores one collection as a JSON array in a single file.
// WriteAll goes through renameio (temp file, fsync, rename), so readers see
// either the old or the new collection.
type FileCollection[T any] struct {
	mu   sync.RWMutex
	path string
	seed func() []T
}

// NewFileCollection creates a collection stored at dir/name.json.
// seed may be nil; when set, a missing or empty file is initialized with it.
func NewFileCollection[T any](dir, name string, seed func() []T) *FileCollection[T] {
	return &FileCollection[T]{
		path: filepath.Join(dir, name+".json"),
		seed: seed,
	}
}

// NewFileBookingStore creates the bookings collection under dir.
func NewFileBookingStore(dir string) *FileCollection[model.Booking] {
	return NewFileCollection[model.Booking](dir, "bookings", nil)
}

// NewFileCouponStore creates the coupon catalog under dir, seeded with DefaultCoupons.
func NewFileCouponStore(dir string) *FileCollection[model.Coupon] {
	return NewFileCollection(dir, "coupons", DefaultCoupons)
}

// Path returns the backing file path.
func (c *FileCollection[T]) Path() string {
	return c.path
}

// ReadAll returns the collection in stored order.
func (c *FileCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	items, err := c.read()
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 || c.seed == nil {
		return items, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another reader may have seeded while we waited for the lock.
	items, err = c.read()
	if err != nil || len(items) > 0 {
		return items, err
	}
	items = c.seed()
	if err := c.write(items); err != nil {
		return nil, err
	}
	log.Info().Str("path", c.path).Int("records", len(items)).Msg("seeded collection")
	return items, nil
}

// WriteAll atomically replaces the collection.
func (c *FileCollection[T]) WriteAll(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(items)
}

// Ping reports whether the collection can be read.
func (c *FileCollection[T]) Ping(ctx context.Context) error {
	_, err := c.ReadAll(ctx)
	return err
}

func (c *FileCollection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return items, nil
}

func (c *FileCollection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := renameio.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}
