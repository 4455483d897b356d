package cli

import (
	"context"

	"taskdash/internal/api"
	"taskdash/internal/errors"
)

// RemoveCommand handles the rm command
type RemoveCommand struct {
	client       api.Client
	errorHandler *ErrorHandler
	app          *App
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{
		client:       app.client,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the rm command
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: td rm <id>", nil)
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.client.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted task %d\n", id)
	return nil
}
