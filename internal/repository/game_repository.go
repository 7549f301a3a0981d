package repository // repository holds data access logic for catalogue entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/game-catalog/internal/model"
)

// ErrGameNotFound is returned when a game lookup fails.
var ErrGameNotFound = notFound("game")

// gameSelect joins the developer and category names so a Game can be
// rendered with nested references in a single round trip.
const gameSelect = `SELECT g.id, g.name, g.developer_id, d.name, g.category_id, c.name,
       g.min_cpu, g.min_memory, g.multiplayer, g.release_year, g.price, g.amount,
       g.created_at, g.updated_at
FROM games g
JOIN game_developers d ON d.id = g.developer_id
JOIN categories c ON c.id = g.category_id`

// GameRepo provides methods to create, read, update and delete games.
type GameRepo struct {
	db  *sql.DB // db is the underlying database connection
	now Clock
}

// NewGameRepo constructs a GameRepo with the given DB handle.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db, now: SystemClock}
}

// WithClock replaces the timestamp source.
func (r *GameRepo) WithClock(c Clock) *GameRepo {
	r.now = c
	return r
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.Game, error) {
	var (
		g                    model.Game
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&g.ID, &g.Name,
		&g.Developer.ID, &g.Developer.Name,
		&g.Category.ID, &g.Category.Name,
		&g.MinCPU, &g.MinMemory, &g.Multiplayer, &g.ReleaseYear, &g.Price, &g.Amount,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	g.CreatedAt = fromMillis(createdAt)
	g.UpdatedAt = fromMillis(updatedAt)
	return &g, nil
}

// Create inserts a new game.  g.Developer.ID and g.Category.ID must point
// at existing rows; the caller resolves them beforehand so it can report
// which reference is missing.  After insert the row is read back into g.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	now := r.now()
	g.ID = uuid.NewString()
	const qInsert = `INSERT INTO games (id, name, developer_id, category_id, min_cpu, min_memory,
	                 multiplayer, release_year, price, amount, created_at, updated_at)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, qInsert,
		g.ID, g.Name, g.Developer.ID, g.Category.ID, g.MinCPU, g.MinMemory,
		g.Multiplayer, g.ReleaseYear, g.Price, g.Amount, toMillis(now), toMillis(now),
	)
	if err != nil {
		return classifyWriteError(err, "game")
	}
	stored, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *stored
	return nil
}

// GetByID retrieves a game with its developer and category names.  It
// returns ErrGameNotFound when no row is found.
func (r *GameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx, gameSelect+" WHERE g.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

// List returns all games, newest first.
func (r *GameRepo) List(ctx context.Context) ([]*model.Game, error) {
	rows, err := r.db.QueryContext(ctx, gameSelect+" ORDER BY g.created_at DESC, g.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes every mutable column of g and refreshes updated_at.  The
// stored row, including re-resolved reference names, is read back into g.
func (r *GameRepo) Update(ctx context.Context, g *model.Game) error {
	const q = `UPDATE games
	           SET name = ?, developer_id = ?, category_id = ?, min_cpu = ?, min_memory = ?,
	               multiplayer = ?, release_year = ?, price = ?, amount = ?, updated_at = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		g.Name, g.Developer.ID, g.Category.ID, g.MinCPU, g.MinMemory,
		g.Multiplayer, g.ReleaseYear, g.Price, g.Amount, toMillis(r.now()), g.ID,
	)
	if err != nil {
		return classifyWriteError(err, "game")
	}
	stored, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *stored
	return nil
}

// Delete removes a game.  Returns ErrGameNotFound when no row matched.
func (r *GameRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return classifyDeleteError(err, "game")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGameNotFound
	}
	return nil
}

// DeleteMany removes all games in ids, or none of them when any id is
// unknown.
func (r *GameRepo) DeleteMany(ctx context.Context, ids []string) error {
	return deleteAllOrNothing(ctx, r.db, "games", "Games", ids)
}
