package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/game-catalog/internal/database"
)

// Clock returns the current time. Repositories take one so tests can pin
// timestamps.
type Clock func() time.Time

// SystemClock is the default clock: UTC at millisecond precision, which is
// what the store keeps.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// uniqueIDs drops repeated ids while keeping request order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// classifyWriteError maps constraint violations raised by an insert or
// update of what onto ErrConflict.
func classifyWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	}
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s references a record that does not exist", ErrConflict, what)
	}
	return err
}

// classifyDeleteError maps a foreign key violation raised by deleting what
// onto ErrConflict.
func classifyDeleteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s is still referenced by other records", ErrConflict, what)
	}
	return err
}

// deleteAllOrNothing removes every row of table whose id is in ids, but only
// when all of them exist. The existence check and the delete are separate
// statements; a concurrent delete between them is not guarded against.
func deleteAllOrNothing(ctx context.Context, db *sql.DB, table, entity string, ids []string) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id FROM "+table+" WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return err
	}
	found := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &MissingIDsError{Entity: entity, IDs: missing}
	}

	if _, err := db.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE id IN ("+placeholders(len(ids))+")", args...); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: one or more %s are still referenced by other records",
				ErrConflict, strings.ToLower(entity))
		}
		return err
	}
	return nil
}
