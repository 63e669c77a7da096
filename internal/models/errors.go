package models

import "errors"

// Domain errors surfaced by the messaging core. Handlers map these onto
// HTTP statuses; services return them wrapped so errors.Is works.
var (
	// ErrUnauthorized means the actor is not a permitted party for the operation.
	ErrUnauthorized = errors.New("actor not permitted for this operation")
	// ErrInvalidTransition means a status precondition was not met
	// (e.g. accepting a request that is no longer pending).
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDuplicatePending means a pending request already exists for the pair.
	ErrDuplicatePending = errors.New("a pending request already exists for this user")
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the caller supplied a malformed or out-of-range
	// value (empty content, unknown message type or theme).
	ErrInvalidInput = errors.New("invalid input")
)
