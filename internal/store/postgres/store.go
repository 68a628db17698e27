// Package postgres provides PostgreSQL-backed store implementations on a
// shared pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// Config holds configuration for the PostgreSQL store backend.
type Config struct {
	Pool *PoolConfig

	// AutoMigrate runs pending migrations on startup.
	AutoMigrate bool
}

// Stores wraps the full set of PostgreSQL-backed stores and owns the shared
// pool.
type Stores struct {
	pool *pgxpool.Pool
	store.Stores
}

// NewStores creates the connection pool, optionally runs migrations, and
// wires up every store.
func NewStores(ctx context.Context, cfg *Config) (*Stores, error) {
	pool, err := NewPool(ctx, cfg.Pool)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := runMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &Stores{
		pool: pool,
		Stores: store.Stores{
			Organizations:  NewOrganizationStore(pool),
			Users:          NewUserStore(pool),
			Projects:       NewProjectStore(pool),
			Tasks:          NewTaskStore(pool),
			Invoices:       NewInvoiceStore(pool),
			Plans:          NewPlanStore(pool),
			Leads:          NewLeadStore(pool),
			ChangeRequests: NewChangeRequestStore(pool),
			Notifications:  NewNotificationStore(pool),
		},
	}, nil
}

// Close releases the shared connection pool.
func (s *Stores) Close() {
	s.pool.Close()
}
