// Package tui provides the interactive browse view for a project's tasks.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/taskpad-dev/taskpad/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(6)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = map[task.Status]lipgloss.Style{
		task.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		task.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// refreshMsg signals that the task list should be re-read from the store.
type refreshMsg struct{}

// watchClosedMsg signals that the filesystem watcher has shut down.
type watchClosedMsg struct{}

// Browse is the bubbletea model for the task browse view. It re-reads the
// store whenever the database directory changes, so writes from other
// taskpad processes show up without restarting.
type Browse struct {
	// projectName is the project being browsed.
	projectName string
	// repo reads tasks from the open project store.
	repo *task.Repository
	// filter is the live substring filter input.
	filter textinput.Model
	// watcher watches the database directory for external writes.
	watcher *fsnotify.Watcher
	// tasks is the last task list read from the store.
	tasks []task.Task
	// err is the last read error, shown in place of the list.
	err error
	// width is the terminal width.
	width int
	// quitting indicates the view is shutting down.
	quitting bool
}

// NewBrowse creates a Browse view over an open repository. dbPath is the
// project database file; its directory is watched because SQLite in WAL
// mode touches sibling files rather than the database itself.
func NewBrowse(projectName string, repo *task.Repository, dbPath string) (*Browse, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}

	ti := textinput.New()
	ti.Placeholder = "Type to filter tasks..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	b := &Browse{
		projectName: projectName,
		repo:        repo,
		filter:      ti,
		watcher:     watcher,
		width:       80,
	}
	b.reload()
	return b, nil
}

// Close releases the filesystem watcher.
func (b *Browse) Close() error {
	return b.watcher.Close()
}

// Init starts the input cursor and the watch loop.
func (b *Browse) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.waitForChange())
}

// waitForChange blocks on the next filesystem event and turns it into a
// refresh.
func (b *Browse) waitForChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-b.watcher.Events:
				if !ok {
					return watchClosedMsg{}
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
					return refreshMsg{}
				}
			case _, ok := <-b.watcher.Errors:
				if !ok {
					return watchClosedMsg{}
				}
				// Watch errors are not fatal for a read-only view.
			}
		}
	}
}

// reload re-reads the task list from the store.
func (b *Browse) reload() {
	b.tasks, b.err = b.repo.List()
}

// Update handles messages for the browse view.
func (b *Browse) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			b.quitting = true
			b.watcher.Close()
			return b, tea.Quit
		case "r":
			if b.filter.Value() == "" {
				b.reload()
				return b, nil
			}
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.filter.Width = msg.Width - 4
		return b, nil

	case refreshMsg:
		b.reload()
		return b, b.waitForChange()

	case watchClosedMsg:
		return b, nil
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	return b, cmd
}

// View renders the browse view.
func (b *Browse) View() string {
	if b.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("taskpad · %s", b.projectName)))
	sb.WriteString("\n\n")
	sb.WriteString(b.filter.View())
	sb.WriteString("\n\n")

	if b.err != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("error: %v", b.err)))
		sb.WriteString("\n")
		return sb.String()
	}

	shown := 0
	needle := strings.ToLower(b.filter.Value())
	for _, t := range b.tasks {
		if needle != "" && !strings.Contains(strings.ToLower(t.Name), needle) {
			continue
		}
		shown++
		style, ok := statusStyle[t.Status]
		if !ok {
			style = errStyle
		}
		sb.WriteString(idStyle.Render(fmt.Sprintf("#%d", t.ID)))
		sb.WriteString(style.Render(fmt.Sprintf("%-12s", t.Status)))
		sb.WriteString(" ")
		sb.WriteString(t.Name)
		sb.WriteString("\n")
	}

	if shown == 0 {
		sb.WriteString(helpStyle.Render("no tasks"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("esc: quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run starts the browse view and blocks until the user quits.
func Run(projectName string, repo *task.Repository, dbPath string) error {
	b, err := NewBrowse(projectName, repo, dbPath)
	if err != nil {
		return err
	}
	defer b.Close()

	p := tea.NewProgram(b, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browse view: %w", err)
	}
	return nil
}
