package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Inventory tracks stock for a single game (one-to-one on game_id).  No
// HTTP route exposes it; the seed tool is its only writer.
type Inventory struct {
    ID        string          // inventory.id
    GameID    string          // inventory.game_id
    Units     int             // inventory.units
    Price     decimal.Decimal // inventory.price
    CreatedAt time.Time       // inventory.created_at
    UpdatedAt time.Time       // inventory.updated_at
}
