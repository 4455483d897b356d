package cli

import (
	"context"

	"taskdash/internal/api"
	"taskdash/internal/errors"
)

// DoneCommand handles the done command, toggling completion state
type DoneCommand struct {
	client       api.Client
	errorHandler *ErrorHandler
	app          *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{
		client:       app.client,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: td done <id>", nil)
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	toggled, err := c.client.ToggleTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}

	state := "pending"
	if toggled.Completed {
		state = "completed"
	}
	c.app.printf("Marked task %d as %s: %s\n", toggled.ID, state, toggled.Title)
	return nil
}
