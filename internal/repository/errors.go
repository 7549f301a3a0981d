// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a write violated a uniqueness or
// referential constraint, while MissingIDsError reports every id of a
// bulk request that did not resolve.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as a duplicate (developer, name) pair or deleting
// a developer that still has games. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is the common parent of every per-entity not found error so
// callers can test for "missing" without naming the entity.
var ErrNotFound = errors.New("not found")

// MissingIDsError is returned by bulk operations when one or more ids do
// not resolve. Nothing has been modified when it is returned.
type MissingIDsError struct {
	Entity string   // plural entity label, e.g. "games"
	IDs    []string // missing ids in request order
}

func (e *MissingIDsError) Error() string {
	return fmt.Sprintf("%s with IDs %s not found", e.Entity, strings.Join(e.IDs, ", "))
}

// Is lets errors.Is(err, ErrNotFound) match bulk misses.
func (e *MissingIDsError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
