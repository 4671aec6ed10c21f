package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/taskpad-dev/taskpad/internal/store"
	"github.com/taskpad-dev/taskpad/internal/task"
)

// setupBrowse creates a Browse view over a temp project store with a few
// tasks in it.
func setupBrowse(t *testing.T) (*Browse, *task.Repository) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "proj.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	repo := task.NewRepository(db)
	for _, name := range []string{"Write spec", "Build parser", "Ship release"} {
		if _, err := repo.Add(name); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}

	b, err := NewBrowse("proj", repo, dbPath)
	if err != nil {
		t.Fatalf("NewBrowse failed: %v", err)
	}
	t.Cleanup(func() {
		b.Close()
	})
	return b, repo
}

func TestBrowseView_ShowsTasks(t *testing.T) {
	b, _ := setupBrowse(t)

	view := b.View()
	for _, want := range []string{"proj", "Write spec", "Build parser", "Ship release", "#1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBrowseView_Filter(t *testing.T) {
	b, _ := setupBrowse(t)

	b.filter.SetValue("parser")
	view := b.View()

	if !strings.Contains(view, "Build parser") {
		t.Error("View() dropped the matching task")
	}
	if strings.Contains(view, "Write spec") || strings.Contains(view, "Ship release") {
		t.Error("View() shows tasks the filter should hide")
	}
}

func TestBrowseView_FilterNoMatch(t *testing.T) {
	b, _ := setupBrowse(t)

	b.filter.SetValue("zzz")
	if !strings.Contains(b.View(), "no tasks") {
		t.Error("View() missing empty-state message")
	}
}

func TestBrowseReload_PicksUpExternalWrites(t *testing.T) {
	b, repo := setupBrowse(t)

	if _, err := repo.Add("Late arrival"); err != nil {
		t.Fatalf("add task: %v", err)
	}

	// Before a reload the view still shows the old list.
	if strings.Contains(b.View(), "Late arrival") {
		t.Error("View() shows the new task before reload")
	}

	b.reload()
	if !strings.Contains(b.View(), "Late arrival") {
		t.Error("View() missing the new task after reload")
	}
}
