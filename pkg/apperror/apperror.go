// Package apperror defines the sentinel errors the service layer surfaces to
// HTTP handlers. Services wrap these with context via fmt.Errorf("...: %w"),
// handlers classify them with errors.Is.
package apperror

import "errors"

var (
	// ErrNotFound indicates an entity id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey indicates a unique constraint violation (SKU, order
	// number, product+warehouse pair).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInsufficientStock rejects removing more than the on-hand quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientAvailable rejects reserving more than quantity minus
	// reserved.
	ErrInsufficientAvailable = errors.New("insufficient available stock")

	// ErrInsufficientReserved rejects releasing more than is reserved.
	ErrInsufficientReserved = errors.New("insufficient reserved stock")

	// ErrInvalidArgument rejects malformed input such as a non-positive
	// adjustment amount or an unknown adjustment type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition rejects an illegal status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrencyConflict indicates an optimistic update lost to a
	// concurrent writer even after a retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
