package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskpad-dev/taskpad/internal/task"
)

const systemPrompt = `You are a project planning assistant for a command-line
task tracker. Given a project plan and its current task list, propose the
next concrete tasks. Respond with one task name per line, no numbering, no
commentary. Each task name must be a single short imperative sentence.`

// Suggest asks the model for candidate next tasks. plan is the raw plan
// note; tasks is the project's current task list. The returned names are
// trimmed and non-empty, at most max entries.
func (c *Client) Suggest(ctx context.Context, plan string, tasks []task.Task, max int) ([]string, error) {
	if max <= 0 {
		max = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project plan:\n%s\n\nCurrent tasks:\n", strings.TrimSpace(plan))
	if len(tasks) == 0 {
		b.WriteString("(none)\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- [%s] %s\n", t.Status, t.Name)
	}
	fmt.Fprintf(&b, "\nPropose up to %d new tasks.", max)

	text, err := c.complete(ctx, systemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	suggestions := ParseSuggestions(text, max)
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("model returned no usable suggestions")
	}
	return suggestions, nil
}

// ParseSuggestions extracts task names from model output, one per line.
// List markers and numbering the model sneaks in anyway are stripped.
func ParseSuggestions(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		name = strings.TrimLeft(name, "-*0123456789.) ")
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == max {
			break
		}
	}
	return out
}
