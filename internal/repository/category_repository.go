package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/game-catalog/internal/model"
)

// ErrCategoryNotFound is returned when a category cannot be found in the DB.
var ErrCategoryNotFound = notFound("category")

// CategoryRepo encapsulates all database queries related to
// categories.  It depends on a sql.DB connection which should be
// configured elsewhere.
type CategoryRepo struct {
	db  *sql.DB
	now Clock
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB
// handle and the system clock.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db, now: SystemClock}
}

// WithClock replaces the timestamp source.
func (r *CategoryRepo) WithClock(c Clock) *CategoryRepo {
	r.now = c
	return r
}

// Create inserts a new category.  The id and both timestamps are assigned
// here, then the row is read back so callers receive exactly what a later
// GetByID would return.
func (r *CategoryRepo) Create(ctx context.Context, cat *model.Category) error {
	now := r.now()
	cat.ID = uuid.NewString()
	const qInsert = "INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, qInsert, cat.ID, cat.Name, toMillis(now), toMillis(now)); err != nil {
		return classifyWriteError(err, "category")
	}
	stored, err := r.GetByID(ctx, cat.ID)
	if err != nil {
		return err
	}
	*cat = *stored
	return nil
}

// GetByID fetches a category by its id.  It returns
// ErrCategoryNotFound if no row is found.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	const q = "SELECT id, name, created_at, updated_at FROM categories WHERE id = ?"
	var (
		cat                  model.Category
		createdAt, updatedAt int64
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	cat.CreatedAt = fromMillis(createdAt)
	cat.UpdatedAt = fromMillis(updatedAt)
	return &cat, nil
}

// List returns every category, newest first, each carrying the number of
// games that reference it.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	const q = `SELECT c.id, c.name, c.created_at, c.updated_at, COUNT(g.id)
	           FROM categories c
	           LEFT JOIN games g ON g.category_id = c.id
	           GROUP BY c.id, c.name, c.created_at, c.updated_at
	           ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Category{}
	for rows.Next() {
		var (
			cat                  model.Category
			createdAt, updatedAt int64
			count                int64
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt, &count); err != nil {
			return nil, err
		}
		cat.CreatedAt = fromMillis(createdAt)
		cat.UpdatedAt = fromMillis(updatedAt)
		cat.GamesCount = &count
		out = append(out, &cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable fields of cat and refreshes updated_at.  The
// caller is expected to have loaded cat first; the stored row is read back
// into cat.
func (r *CategoryRepo) Update(ctx context.Context, cat *model.Category) error {
	const q = `UPDATE categories
	           SET name = ?, updated_at = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, cat.Name, toMillis(r.now()), cat.ID); err != nil {
		return classifyWriteError(err, "category")
	}
	stored, err := r.GetByID(ctx, cat.ID)
	if err != nil {
		return err
	}
	*cat = *stored
	return nil
}

// Delete removes a category.  ErrCategoryNotFound is returned when
// the id does not exist and ErrConflict while games still reference it.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return classifyDeleteError(err, "category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteMany removes all categories in ids, or none of them when any id is
// unknown (a *MissingIDsError lists the unknown ids).
func (r *CategoryRepo) DeleteMany(ctx context.Context, ids []string) error {
	return deleteAllOrNothing(ctx, r.db, "categories", "Categories", ids)
}
