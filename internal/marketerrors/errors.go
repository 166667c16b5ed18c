package marketerrors

import "errors"

// Caller-correctable errors
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// State and concurrency errors
var (
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state for operation")
)

// Downstream collaborator errors; retried once before surfacing
var (
	ErrDependency = errors.New("dependency failure")
)
