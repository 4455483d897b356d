package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"taskdash/internal/api"
	"taskdash/internal/errors"
	"taskdash/internal/validation"
)

// LoginCommand handles the login command
type LoginCommand struct {
	client       api.Client
	validator    *validation.CredentialsValidator
	errorHandler *ErrorHandler
	app          *App

	// Password supplied via flag; prompted for when empty.
	Password string
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{
		client:       app.client,
		validator:    validation.NewCredentialsValidatorWith(validation.NewValidatorWithConfig(app.config)),
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: td login <email>", nil)
	}
	email := args[0]

	password := c.Password
	if password == "" {
		var err error
		password, err = promptPassword(c.app.out, c.app.in)
		if err != nil {
			return err
		}
	}

	if err := c.validator.ValidateLogin(email, password); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	auth, err := c.client.Login(ctx, email, password)
	if err != nil {
		return c.errorHandler.Handle("log in", err)
	}

	c.app.printf("Logged in as %s\n", auth.User.DisplayName())
	return nil
}

// promptPassword reads a password line from the given reader
func promptPassword(out io.Writer, in io.Reader) (string, error) {
	fmt.Fprint(out, "Password: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.NewValidationError("could not read password", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
