package cli

import (
	"context"

	"taskdash/internal/session"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	session      *session.Store
	errorHandler *ErrorHandler
	app          *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{
		session:      app.session,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the logout command. Logging out while already signed out
// is not an error.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.session.ClearToken(ctx); err != nil {
		return c.errorHandler.Handle("log out", err)
	}

	c.app.printf("Signed out\n")
	return nil
}
