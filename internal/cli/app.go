package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"taskdash/internal/api"
	"taskdash/internal/config"
	"taskdash/internal/errors"
	"taskdash/internal/session"
)

// App bundles the dependencies shared by all command handlers.
type App struct {
	client  api.Client
	session *session.Store
	config  *config.Config
	logger  *zap.Logger
	out     io.Writer
	in      io.Reader
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(client api.Client, store *session.Store, cfg *config.Config, logger *zap.Logger) *App {
	return &App{
		client:  client,
		session: store,
		config:  cfg,
		logger:  logger,
		out:     os.Stdout,
		in:      os.Stdin,
	}
}

// printf writes formatted output to the application's output writer
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// parseTaskID parses a task id argument
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid task id: %s", arg), err)
	}
	return id, nil
}
