package cli

import (
	"context"
	"strings"

	"taskdash/internal/api"
	"taskdash/internal/errors"
	"taskdash/internal/validation"
)

// SignupCommand handles the signup command
type SignupCommand struct {
	client       api.Client
	validator    *validation.CredentialsValidator
	errorHandler *ErrorHandler
	app          *App

	// Password supplied via flag; prompted for when empty.
	Password string
}

// NewSignupCommand creates a new signup command handler
func NewSignupCommand(app *App) *SignupCommand {
	return &SignupCommand{
		client:       app.client,
		validator:    validation.NewCredentialsValidatorWith(validation.NewValidatorWithConfig(app.config)),
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute runs the signup command. The first argument is the email, the
// rest form the display name.
func (c *SignupCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: td signup <email> <name>", nil)
	}
	email := args[0]
	name := strings.Join(args[1:], " ")

	password := c.Password
	if password == "" {
		var err error
		password, err = promptPassword(c.app.out, c.app.in)
		if err != nil {
			return err
		}
	}

	if err := c.validator.ValidateSignup(email, password, name); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	auth, err := c.client.Signup(ctx, email, password, name)
	if err != nil {
		return c.errorHandler.Handle("sign up", err)
	}

	c.app.printf("Account created. Logged in as %s\n", auth.User.DisplayName())
	return nil
}
