// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrForbidden indicates
// that the current user is not authorized to operate on a resource owned
// by someone else, while ErrEmailExists signals that the store rejected a
// duplicate registration.
package repository

import "errors"

// ErrEmailExists is returned when a user insert collides with the unique
// index on users.email. Handlers translate this into the conflict
// response. The index is what actually settles the check-then-insert
// race between concurrent registrations.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrDestinationNotFound is returned when a destination id does not exist.
var ErrDestinationNotFound = errors.New("destination not found")

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when an insert collides with a unique index,
// such as wishlisting the same destination twice.
var ErrDuplicate = errors.New("duplicate entry")
