package task

import "errors"

// Sentinel errors returned by Repository operations. Callers match them
// with errors.Is; the command layer turns them into exit codes.
var (
	// ErrNotFound is returned when no task row matches the given id.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyName is returned when a caller supplies an empty task name.
	ErrEmptyName = errors.New("task name must not be empty")

	// ErrInvalidState is returned when a stored status value is outside
	// the defined enum. This indicates corrupt data; the row is left
	// untouched.
	ErrInvalidState = errors.New("invalid task status")
)
