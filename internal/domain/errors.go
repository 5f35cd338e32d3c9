package domain

import "errors"

var (
	// ErrNotFound indicates the requested customer does not exist. Callers
	// wrap it with the offending id.
	ErrNotFound = errors.New("customer not found")
	// ErrIDProvided is returned when a create request carries a caller-set id.
	ErrIDProvided = errors.New("id must not be provided on create")
	// ErrEmailTaken indicates another customer already uses the email.
	ErrEmailTaken = errors.New("email already in use")
)
