package task

import "fmt"

// Status represents the lifecycle state of a task.
// It is stored as text and must round-trip exactly.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the defined status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the successor status. Transitions are forward-only:
// pending -> in_progress -> completed, with completed as the terminal
// state mapping to itself. A value outside the enum means the stored
// row is corrupt and yields ErrInvalidState.
func (s Status) Next() (Status, error) {
	switch s {
	case StatusPending:
		return StatusInProgress, nil
	case StatusInProgress:
		return StatusCompleted, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("status %q: %w", string(s), ErrInvalidState)
	}
}

// Terminal reports whether advancing s is a no-op.
func (s Status) Terminal() bool {
	return s == StatusCompleted
}
