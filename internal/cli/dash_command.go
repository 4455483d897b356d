package cli

import (
	"context"

	"taskdash/internal/errors"
	"taskdash/internal/taskview"
	"taskdash/internal/tui"
)

// DashCommand handles the dash command, opening the interactive
// dashboard
type DashCommand struct {
	errorHandler *ErrorHandler
	app          *App
}

// NewDashCommand creates a new dash command handler
func NewDashCommand(app *App) *DashCommand {
	return &DashCommand{
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the dash command
func (c *DashCommand) Execute(ctx context.Context, args []string) error {
	if !c.app.session.IsAuthenticated(ctx) {
		return c.errorHandler.HandleSimple(errors.NewUnauthenticatedError("open dashboard"))
	}

	// Restore the persisted view preferences before the first fetch
	filter := c.app.session.DefaultStatusFilter(ctx)
	sortKey := c.app.session.DefaultSortKey(ctx)
	engine := taskview.NewEngineWithDefaults(c.app.client, c.app.logger, filter, sortKey)

	if err := engine.Refresh(ctx); err != nil {
		return c.errorHandler.Handle("load tasks", err)
	}

	dashboard, err := tui.New(engine, c.app.session, c.app.config, c.app.logger)
	if err != nil {
		return c.errorHandler.Handle("open dashboard", err)
	}
	defer dashboard.Close()

	return dashboard.Run(ctx)
}
