package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type idAllocator struct {
	pool *pgxpool.Pool
}

// NewIDAllocator returns the Postgres-backed allocator. The counter lives in
// the single-row id_allocator table seeded by the initial migration.
func NewIDAllocator(pool *pgxpool.Pool) IDAllocator {
	return &idAllocator{pool: pool}
}

func (a *idAllocator) NextID(ctx context.Context) (uint64, error) {
	// Single-statement read-increment-return; row-level locking makes the
	// sequence atomic across concurrent callers.
	const query = `
        UPDATE id_allocator SET next_id = next_id + 1
        WHERE singleton
        RETURNING next_id - 1`

	var id int64
	if err := a.pool.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	return uint64(id), nil
}
