package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")

	// Member errors
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidToken   = errors.New("invalid authentication token")

	// Validation errors
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrEmptyTitle      = errors.New("title is required")

	// Boundary errors from the simulated persistence layer
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
