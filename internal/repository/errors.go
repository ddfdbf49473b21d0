// Package repository maps the stored collections to typed records. Every
// repository reads the whole collection and writes it back in one store
// update; the store provides the per-collection exclusion.
package repository

import "errors"

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("repository: not found")

// ErrAccountExists is returned when an account id is already taken,
// ignoring case.
var ErrAccountExists = errors.New("repository: account already exists")

// ErrCorrupt is returned by writes when the stored collection cannot be
// decoded. Reads treat such a collection as empty, but writing over it would
// throw the stored records away, so writes refuse.
var ErrCorrupt = errors.New("repository: stored collection is not valid JSON")
