package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/game-catalog/internal/model"
)

// ErrGameDeveloperNotFound is returned when a developer cannot be found in the DB.
var ErrGameDeveloperNotFound = notFound("game developer")

// GameDeveloperRepo encapsulates all database queries related to game
// developers.  It depends on a sql.DB connection which should be
// configured elsewhere.
type GameDeveloperRepo struct {
	db  *sql.DB
	now Clock
}

// NewGameDeveloperRepo constructs a GameDeveloperRepo with the provided DB
// handle and the system clock.
func NewGameDeveloperRepo(db *sql.DB) *GameDeveloperRepo {
	return &GameDeveloperRepo{db: db, now: SystemClock}
}

// WithClock replaces the timestamp source.
func (r *GameDeveloperRepo) WithClock(c Clock) *GameDeveloperRepo {
	r.now = c
	return r
}

// Create inserts a new developer.  The id and both timestamps are assigned
// here, then the row is read back so callers receive exactly what a later
// GetByID would return.
func (r *GameDeveloperRepo) Create(ctx context.Context, d *model.GameDeveloper) error {
	now := r.now()
	d.ID = uuid.NewString()
	const qInsert = "INSERT INTO game_developers (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, qInsert, d.ID, d.Name, toMillis(now), toMillis(now)); err != nil {
		return classifyWriteError(err, "game developer")
	}
	stored, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *stored
	return nil
}

// GetByID fetches a developer by its id.  It returns
// ErrGameDeveloperNotFound if no row is found.
func (r *GameDeveloperRepo) GetByID(ctx context.Context, id string) (*model.GameDeveloper, error) {
	const q = "SELECT id, name, created_at, updated_at FROM game_developers WHERE id = ?"
	var (
		d                    model.GameDeveloper
		createdAt, updatedAt int64
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameDeveloperNotFound
		}
		return nil, err
	}
	d.CreatedAt = fromMillis(createdAt)
	d.UpdatedAt = fromMillis(updatedAt)
	return &d, nil
}

// List returns every developer, newest first, each carrying the number of
// games that reference it.
func (r *GameDeveloperRepo) List(ctx context.Context) ([]*model.GameDeveloper, error) {
	const q = `SELECT d.id, d.name, d.created_at, d.updated_at, COUNT(g.id)
	           FROM game_developers d
	           LEFT JOIN games g ON g.developer_id = d.id
	           GROUP BY d.id, d.name, d.created_at, d.updated_at
	           ORDER BY d.created_at DESC, d.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.GameDeveloper{}
	for rows.Next() {
		var (
			d                    model.GameDeveloper
			createdAt, updatedAt int64
			count                int64
		)
		if err := rows.Scan(&d.ID, &d.Name, &createdAt, &updatedAt, &count); err != nil {
			return nil, err
		}
		d.CreatedAt = fromMillis(createdAt)
		d.UpdatedAt = fromMillis(updatedAt)
		d.GamesCount = &count
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable fields of d and refreshes updated_at.  The
// caller is expected to have loaded d first; the stored row is read back
// into d.
func (r *GameDeveloperRepo) Update(ctx context.Context, d *model.GameDeveloper) error {
	const q = `UPDATE game_developers
	           SET name = ?, updated_at = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, d.Name, toMillis(r.now()), d.ID); err != nil {
		return classifyWriteError(err, "game developer")
	}
	stored, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *stored
	return nil
}

// Delete removes a developer.  ErrGameDeveloperNotFound is returned when
// the id does not exist and ErrConflict while games still reference it.
func (r *GameDeveloperRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM game_developers WHERE id = ?", id)
	if err != nil {
		return classifyDeleteError(err, "game developer")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGameDeveloperNotFound
	}
	return nil
}

// DeleteMany removes all developers in ids, or none of them when any id is
// unknown (a *MissingIDsError lists the unknown ids).
func (r *GameDeveloperRepo) DeleteMany(ctx context.Context, ids []string) error {
	return deleteAllOrNothing(ctx, r.db, "game_developers", "Game developers", ids)
}
