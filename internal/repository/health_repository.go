package repository

import (
	"context"
	"database/sql"
)

// HealthRepo runs the liveness round trip against the store.
type HealthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

// Check executes SELECT 1 and returns any driver error unchanged.
func (r *HealthRepo) Check(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}
