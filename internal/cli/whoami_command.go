package cli

import (
	"context"

	"taskdash/internal/errors"
	"taskdash/internal/session"
)

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	session      *session.Store
	errorHandler *ErrorHandler
	app          *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{
		session:      app.session,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	user, ok := c.session.CurrentUser(ctx)
	if !ok {
		return c.errorHandler.HandleSimple(errors.NewUnauthenticatedError("whoami"))
	}

	c.app.printf("%s <%s>\n", user.DisplayName(), user.Email)
	c.app.printf("Member since %s\n", user.CreatedAt.Format(c.app.config.Time.DisplayFormat))
	return nil
}
