package services

import "errors"

var (
	// ErrForbidden is returned when the caller does not own the entity.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateCompany   = errors.New("company already registered")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidSalaryType  = errors.New("invalid salary type")
	ErrAlreadyApplied     = errors.New("already applied")
	ErrInvalidStatus      = errors.New("invalid status")

	// ErrListTimeout is returned when the public job list does not finish
	// within the configured window.
	ErrListTimeout = errors.New("job list timed out")

	// ErrUploadUnavailable is returned when a file is supplied but no
	// storage backend is configured.
	ErrUploadUnavailable = errors.New("upload backend not configured")
)
