package models

import "errors"

// Sentinel errors surfaced by the repositories and services. Handlers map
// these to HTTP statuses; anything else is treated as an internal error and
// redacted before it reaches the client.
var (
	// ErrValidation marks rejected input; wrap it so the reason survives to
	// the response instead of being redacted as an internal error.
	ErrValidation = errors.New("validation failed")

	ErrNotFound               = errors.New("record not found")
	ErrNotFoundOrUnauthorized = errors.New("event not found or unauthorized")
	ErrDuplicateUsername      = errors.New("username already taken")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAlreadyRegistered      = errors.New("user already registered for this event")
	ErrNotRegistered          = errors.New("user is not registered for this event")
	ErrSelfRegistration       = errors.New("event creator cannot register as participant")
	ErrEventStarted           = errors.New("registration is closed for past events")
	ErrNoImage                = errors.New("no image exists")
)
