package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUnknownUser and ErrInvalidCredential are distinct inside the core.
	// The HTTP boundary renders both as the same "invalid credentials" response.
	ErrUnknownUser       = errors.New("unknown user")
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrUserNotFound is returned by a UserDirectory lookup miss.
	ErrUserNotFound = errors.New("user not found")

	// ErrDirectoryUnavailable wraps transient failures of the user store.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")

	ErrSessionNotFound = errors.New("session not found")
)
