package model

import "time"

// GameDeveloper represents a studio that owns zero or more games.  This
// struct corresponds to a row in the `game_developers` table.
//
// Fields:
//  ID         – UUID primary key.
//  Name       – display name, 1..255 characters.
//  GamesCount – number of games referencing the developer; only populated
//               by list queries.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type GameDeveloper struct {
    ID         string    `json:"id"`                   // game_developers.id
    Name       string    `json:"name"`                 // game_developers.name
    GamesCount *int64    `json:"gamesCount,omitempty"` // COUNT(games.id)
    CreatedAt  time.Time `json:"createdAt"`            // game_developers.created_at
    UpdatedAt  time.Time `json:"updatedAt"`            // game_developers.updated_at
}
