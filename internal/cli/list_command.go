package cli

import (
	"context"
	"fmt"
	"strings"

	"taskdash/internal/api"
	"taskdash/internal/domain"
	"taskdash/internal/taskview"
)

// ListCommand handles the list command
type ListCommand struct {
	client       api.Client
	errorHandler *ErrorHandler
	app          *App

	// Flags
	Sort   string
	Search string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		client:       app.client,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the list command. An optional positional argument selects
// the status filter; search matching happens locally after the fetch.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter := domain.StatusFilterAll
	if len(args) > 0 {
		parsed, err := domain.ParseStatusFilter(args[0])
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		filter = parsed
	}

	sortKey, err := domain.ParseSortKey(c.Sort)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	tasks, err := c.client.ListTasks(ctx, filter, sortKey)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	projection := taskview.Derive(tasks, filter, c.Search, sortKey)
	c.printTasks(projection)
	return nil
}

// printTasks prints one line per task in the format:
// [x] id  title (priority) due yyyy-mm-dd
func (c *ListCommand) printTasks(tasks []*domain.Task) {
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return
	}

	for _, task := range tasks {
		c.app.printf("%s\n", formatTaskLine(task))
	}
}

// formatTaskLine renders a single task for list output
func formatTaskLine(task *domain.Task) string {
	var b strings.Builder

	if task.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	fmt.Fprintf(&b, "%-4d %s", task.ID, task.Title)

	if task.Priority != "" {
		fmt.Fprintf(&b, " (%s)", task.Priority)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, " due %s", task.DueDate.Format("2006-01-02"))
	}

	return b.String()
}
