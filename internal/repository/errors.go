// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across repositories so
// handlers can map failure scenarios to HTTP responses without inspecting
// driver errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// dependent state, such as deleting a team that still plays scheduled
// matches. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrSeatsUnavailable is returned when a booking asks for seats that are
// no longer available. At most one ticket can ever reference a given
// (match, seat) pair; the losing request gets this error instead of a
// double booking.
var ErrSeatsUnavailable = errors.New("seats unavailable")
