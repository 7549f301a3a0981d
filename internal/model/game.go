package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Game is a catalogue entry.  It belongs to exactly one developer and one
// category, rendered as nested references rather than bare ids.  The pair
// (developer, name) is unique.
type Game struct {
    ID          string          `json:"id"`          // games.id
    Name        string          `json:"name"`        // games.name
    Developer   Ref             `json:"developer"`   // games.developer_id joined to game_developers.name
    Category    Ref             `json:"category"`    // games.category_id joined to categories.name
    MinCPU      decimal.Decimal `json:"minCpu"`      // games.min_cpu, GHz
    MinMemory   int64           `json:"minMemory"`   // games.min_memory, MB
    Multiplayer bool            `json:"multiplayer"` // games.multiplayer
    ReleaseYear int             `json:"releaseYear"` // games.release_year
    Price       decimal.Decimal `json:"price"`       // games.price
    Amount      int64           `json:"amount"`      // games.amount, copies available
    CreatedAt   time.Time       `json:"createdAt"`   // games.created_at
    UpdatedAt   time.Time       `json:"updatedAt"`   // games.updated_at
}
