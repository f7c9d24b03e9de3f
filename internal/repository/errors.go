// Package repository defines sentinel error values reused across
// repositories.  Handlers translate these into HTTP statuses instead
// of inspecting driver errors themselves.  The duplicate-key sentinel
// matters most: ticket codes carry a UNIQUE constraint and guest
// creation must surface collisions as a 400, not a 500.
package repository

import "errors"

// ErrGuestNotFound is returned when no guest matches the lookup key
// (ticket code or id).  Handlers map it to HTTP 404.
var ErrGuestNotFound = errors.New("guest not found")

// ErrEventNotFound is returned when an event id does not exist.
// Handlers map it to HTTP 404.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when a user id or email does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrTicketCodeExists is returned when inserting a guest whose ticket
// code collides with an existing one.  Handlers map it to HTTP 400.
var ErrTicketCodeExists = errors.New("ticket code already exists")

// ErrEmailExists is returned when creating a user with an email that
// is already registered.  Handlers map it to HTTP 400.
var ErrEmailExists = errors.New("email already exists")
