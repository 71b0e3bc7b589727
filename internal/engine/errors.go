// Package engine defines sentinel error values shared by all allocation
// operations. These values allow the HTTP layer to distinguish precondition
// violations from lookup failures without inspecting error strings. Every
// error here represents a rejected intent: no engine state is mutated when
// one of them is returned.
package engine

import "errors"

// ErrDuplicateActiveBooking is returned when a student submits a booking
// while already holding a pending or approved one. Handlers should translate
// this into an HTTP 409 response.
var ErrDuplicateActiveBooking = errors.New("student already has an active booking")

// ErrDuplicatePendingChange is returned when a student submits a room change
// while an earlier change request is still pending. Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicatePendingChange = errors.New("student already has a pending room change")

// ErrNoAssignedRoom is returned when a student without an approved booking
// submits a room change. Handlers should translate this into an HTTP 422
// response.
var ErrNoAssignedRoom = errors.New("student has no assigned room")

// ErrNotFound is returned when the referenced ledger entry does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned when a student attempts to act on a ledger entry
// owned by someone else. Handlers should translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")
