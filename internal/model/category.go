package model

import "time"

// Category groups games by genre.  This struct corresponds to a row in the
// `categories` table.  GamesCount is only populated by list queries.
type Category struct {
    ID         string    `json:"id"`                   // categories.id
    Name       string    `json:"name"`                 // categories.name
    GamesCount *int64    `json:"gamesCount,omitempty"` // COUNT(games.id)
    CreatedAt  time.Time `json:"createdAt"`            // categories.created_at
    UpdatedAt  time.Time `json:"updatedAt"`            // categories.updated_at
}
