// Package engine implements the reservation/inventory consistency core:
// the flight and hotel catalogs, the reservation ledger, capacity
// derivation, the reservation lifecycle state machine and durable id
// allocation.  The engine owns an in-memory working set and flushes it
// through a Store after every state-changing operation.  Handlers call
// the engine; the engine knows nothing about HTTP, menus or credentials.
package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a flight, hotel or reservation id is
// unknown.  Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when creating a resource whose id already
// exists in the catalog, or, defensively, when the ledger is asked to
// append a record with an id it already holds.  Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicateID = errors.New("duplicate id")

// ErrInsufficientCapacity is returned when admission control refuses a
// new reservation because the resource has no remaining capacity.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

// ErrInvalidTransition is returned when a reservation's current status
// does not permit the requested status change.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrNotAuthorized is returned when a user attempts to cancel a
// reservation owned by someone else.  Handlers should translate this
// into an HTTP 403 response.
var ErrNotAuthorized = errors.New("not authorized")

// ErrPersistence wraps any failure reported by the Store.  An operation
// that returns a persistence error did not durably commit and has been
// rolled back from the in-memory working set.
var ErrPersistence = errors.New("persistence failure")

// persistErr wraps a store error with the ErrPersistence sentinel so
// callers can match it with errors.Is while keeping the cause.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
