package cli

import (
	"context"

	"taskdash/internal/api"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
	"taskdash/internal/validation"
)

// EditCommand handles the edit command. Only the fields whose flags
// were set on the command line are sent to the backend; everything
// else is left unchanged.
type EditCommand struct {
	client       api.Client
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	app          *App

	// Flags; nil means the flag was not set
	Title       *string
	Description *string
	Priority    *string
	Due         *string
	Completed   *bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		client:       app.client,
		validator:    validation.NewTaskValidatorWith(validation.NewValidatorWithConfig(app.config)),
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: td edit <id>", nil)
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	update, err := c.buildUpdate()
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.validator.ValidateForUpdate(id, update); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	updated, err := c.client.UpdateTask(ctx, id, update)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	c.app.printf("Updated task %d: %s\n", updated.ID, updated.Title)
	return nil
}

// buildUpdate converts the set flags into a partial update
func (c *EditCommand) buildUpdate() (domain.TaskUpdate, error) {
	update := domain.TaskUpdate{
		Title:       c.Title,
		Description: c.Description,
		Completed:   c.Completed,
	}

	if c.Priority != nil {
		priority := domain.Priority(*c.Priority)
		update.Priority = &priority
	}

	if c.Due != nil {
		due, ok := validation.NewValidatorWithConfig(c.app.config).ParseDueDate(*c.Due)
		if !ok {
			return domain.TaskUpdate{}, errors.NewValidationError("due date must be in YYYY-MM-DD format", nil)
		}
		update.DueDate = &due
	}

	if update.Title == nil && update.Description == nil && update.Completed == nil &&
		update.Priority == nil && update.DueDate == nil {
		return domain.TaskUpdate{}, errors.NewValidationError("nothing to update: set at least one of --title, --desc, --priority, --due, --completed", nil)
	}

	return update, nil
}
