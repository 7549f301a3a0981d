package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/game-catalog/internal/model"
)

// ErrInventoryNotFound is returned when a game has no inventory row.
var ErrInventoryNotFound = notFound("inventory")

// InventoryRepo persists per-game stock records.  Rows are removed together
// with their game by the ON DELETE CASCADE foreign key.
type InventoryRepo struct {
	db  *sql.DB
	now Clock
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db, now: SystemClock}
}

// Create inserts the stock record for inv.GameID.  A second record for the
// same game yields ErrConflict.
func (r *InventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	now := r.now()
	inv.ID = uuid.NewString()
	inv.CreatedAt, inv.UpdatedAt = now, now
	const q = `INSERT INTO inventory (id, game_id, units, price, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, inv.ID, inv.GameID, inv.Units, inv.Price, toMillis(now), toMillis(now)); err != nil {
		return classifyWriteError(err, "inventory")
	}
	return nil
}

// GetByGameID returns the stock record of a game.
func (r *InventoryRepo) GetByGameID(ctx context.Context, gameID string) (*model.Inventory, error) {
	const q = `SELECT id, game_id, units, price, created_at, updated_at FROM inventory WHERE game_id = ?`
	var (
		inv                  model.Inventory
		createdAt, updatedAt int64
	)
	if err := r.db.QueryRowContext(ctx, q, gameID).Scan(&inv.ID, &inv.GameID, &inv.Units, &inv.Price, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	inv.CreatedAt = fromMillis(createdAt)
	inv.UpdatedAt = fromMillis(updatedAt)
	return &inv, nil
}
