package task

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/taskpad-dev/taskpad/internal/store"
)

// Repository provides task operations against one project's store.
// It holds an open handle rather than reopening the database by name;
// every call reads the latest persisted state, so writes by other
// processes between calls are picked up.
type Repository struct {
	db *store.DB
}

// NewRepository creates a Repository over an open store.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a new task in the pending state and returns its id.
func (r *Repository) Add(name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}

	result, err := r.db.Exec(`
		INSERT INTO tasks (name, status) VALUES (?, ?)
	`, name, string(StatusPending))
	if err != nil {
		return 0, fmt.Errorf("add task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get task id: %w", err)
	}
	return id, nil
}

// Rename overwrites a task's name in place. Status and id are untouched.
// A missing id is reported as ErrNotFound: the existence check and the
// update run in the same transaction, since UPDATE alone cannot tell a
// missing row from an unchanged one.
func (r *Repository) Rename(id int64, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return ErrEmptyName
	}

	return r.db.Transaction(func(tx *sql.Tx) error {
		var exists int
		row := tx.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", id)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("check task %d: %w", id, err)
		}
		if exists == 0 {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}

		if _, err := tx.Exec("UPDATE tasks SET name = ? WHERE id = ?", newName, id); err != nil {
			return fmt.Errorf("rename task %d: %w", id, err)
		}
		return nil
	})
}

// Advance moves a task one step forward in its lifecycle and returns the
// new status. Advancing a completed task is a no-op that returns
// completed. The read and the conditional write share one transaction so
// a concurrent external writer cannot cause a lost update.
func (r *Repository) Advance(id int64) (Status, error) {
	var next Status

	err := r.db.Transaction(func(tx *sql.Tx) error {
		var current Status
		row := tx.QueryRow("SELECT status FROM tasks WHERE id = ?", id)
		err := row.Scan(&current)
		if err == sql.ErrNoRows {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read task %d: %w", id, err)
		}

		next, err = current.Next()
		if err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
		if current.Terminal() {
			return nil
		}

		// The status predicate keeps the write consistent with the read.
		if _, err := tx.Exec(`
			UPDATE tasks SET status = ? WHERE id = ? AND status = ?
		`, string(next), id, string(current)); err != nil {
			return fmt.Errorf("advance task %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

// SetDescription stores the optional description payload for a task.
func (r *Repository) SetDescription(id int64, description []byte) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		var exists int
		row := tx.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", id)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("check task %d: %w", id, err)
		}
		if exists == 0 {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}

		if _, err := tx.Exec("UPDATE tasks SET description = ? WHERE id = ?", description, id); err != nil {
			return fmt.Errorf("describe task %d: %w", id, err)
		}
		return nil
	})
}

// Get retrieves a task by id.
func (r *Repository) Get(id int64) (*Task, error) {
	row := r.db.QueryRow(`
		SELECT id, name, status, description FROM tasks WHERE id = ?
	`, id)

	var t Task
	var description []byte
	err := row.Scan(&t.ID, &t.Name, &t.Status, &description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.Description = description
	return &t, nil
}

// List returns all tasks ordered by id.
func (r *Repository) List() ([]Task, error) {
	rows, err := r.db.Query(`
		SELECT id, name, status, description FROM tasks ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var description []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &description); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Description = description
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CountByStatus returns the number of tasks in each status.
func (r *Repository) CountByStatus() (map[Status]int, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM tasks GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	return counts, nil
}
