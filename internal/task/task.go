// Package task implements the task model and its repository: creation,
// renaming, and the forward-only status lifecycle, persisted in a
// project's SQLite store.
package task

// Task represents a single unit of work in a project.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id"`
	// Name is the human-readable task name, never empty.
	Name string `json:"name"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// Description is an optional payload; nil when unset.
	Description []byte `json:"description,omitempty"`
}
