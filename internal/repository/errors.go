package repository

import "errors"

// Sentinel errors shared by all store implementations. Services translate
// these into the caller-facing taxonomy.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned by AccountRepository.Create and Update when
	// the email is already claimed. The store itself enforces this, so two
	// concurrent inserts with the same email resolve to one success and one
	// ErrDuplicateKey regardless of any service-side pre-check.
	ErrDuplicateKey = errors.New("duplicate key")
)
