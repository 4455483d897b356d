package cli

import (
	"context"
	"strings"

	"taskdash/internal/api"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
	"taskdash/internal/validation"
)

// AddCommand handles the add command
type AddCommand struct {
	client       api.Client
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	app          *App

	// Flags
	Description string
	Priority    string
	Due         string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		client:       app.client,
		validator:    validation.NewTaskValidatorWith(validation.NewValidatorWithConfig(app.config)),
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the add command. All positional arguments are joined
// into the title.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: td add <title>", nil)
	}

	title, err := c.validator.GetValidTitle(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	input := domain.TaskCreate{
		Title:       title,
		Description: c.Description,
		Priority:    domain.Priority(c.Priority),
	}

	if c.Due != "" {
		due, ok := validation.NewValidatorWithConfig(c.app.config).ParseDueDate(c.Due)
		if !ok {
			return c.errorHandler.HandleSimple(
				errors.NewValidationError("due date must be in YYYY-MM-DD format", nil))
		}
		input.DueDate = &due
	}

	if err := c.validator.ValidateForCreation(input); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	created, err := c.client.CreateTask(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task %d: %s\n", created.ID, created.Title)
	return nil
}
