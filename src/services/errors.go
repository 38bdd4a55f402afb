// Package services holds the business rules: user lifecycle, the matching
// engine and the connection-request state machine.
package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrAlreadyInactive    = errors.New("user is already inactive")
	ErrForbidden          = errors.New("forbidden")

	// ErrInvalidTransition covers every connection-workflow precondition
	// violation; callers wrap it with the specific reason.
	ErrInvalidTransition = errors.New("invalid connection state transition")
	ErrInvalidDecision   = errors.New(`decision must be "accept" or "reject"`)

	ErrInternal = errors.New("internal error")
)
