// Package store persists whole collections as JSON documents. A store knows
// nothing about the records inside a collection: it hands out the current
// document and atomically replaces it.
package store

import (
	"context"
	"errors"
)

// Collection names used by the application.
const (
	Movies  = "movies"
	Users   = "users"
	Reviews = "reviews"
)

// ErrConflict is returned when a concurrent writer kept winning and the
// update could not be applied.
var ErrConflict = errors.New("store: concurrent update conflict")

// UpdateFunc receives the current document (nil when the collection has never
// been written) and returns the replacement. Returning an error aborts the
// update and leaves the stored document untouched. A store may call fn more
// than once when it has to retry, so fn must not depend on earlier calls.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is the persistence contract behind every repository. Implementations
// must run Update as one exclusive read-modify-write per collection.
type Store interface {
	// Load returns the current document or nil when there is none.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Update replaces the document with the result of fn.
	Update(ctx context.Context, collection string, fn UpdateFunc) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
