package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdash/internal/config"
)

// AppFactory builds the application dependencies once the final
// configuration is known. Construction is deferred until after flag
// overrides are applied so that --server-url and friends take effect.
type AppFactory func(cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory AppFactory
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory AppFactory) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "td",
		Short: "A command-line client for your task list",
		Long: `Task Dashboard (td) is a command-line client for a personal task
management server.

FEATURES:
  • Sign up, log in and inspect the current session
  • Add, edit, complete and delete tasks
  • List tasks with status filters, sorting and local search
  • Interactive full-screen dashboard (td dash)
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  td signup ada@example.com "Ada Lovelace"   # Create an account
  td login ada@example.com                   # Sign in (prompts for password)
  td add "Buy milk" --priority high          # Add a task
  td list pending --sort title               # List pending tasks by title
  td list --search milk                      # Search across your tasks
  td done 3                                  # Toggle completion for task 3
  td dash                                    # Open the interactive dashboard

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Server Configuration:
    TD_SERVER_URL                          Backend base URL (default: http://localhost:8000)
    TD_SERVER_REQUEST_TIMEOUT              Per-request timeout (default: 10s)

  Session Configuration:
    TD_SESSION_DIR                         Session store directory (default: ~/.td)
    TD_SESSION_FILENAME                    Session store filename (default: session.db)

  Display Configuration:
    TD_TIME_DISPLAY_FORMAT                 Time format (default: 2006-01-02 15:04:05)
    TD_DISPLAY_DATE_ONLY                   Show date only (default: false)

  Validation Configuration:
    TD_VALIDATION_TITLE_MIN                Min task title length (default: 1)
    TD_VALIDATION_TITLE_MAX                Max task title length (default: 255)
    TD_VALIDATION_PASSWORD_MIN             Min password length for signup (default: 8)

  Application Configuration:
    TD_APP_TIMEOUT                         Application timeout (default: 60s)
    TD_APP_VERBOSE                         Enable verbose output (default: false)

GETTING HELP:
  td [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// getApp builds the application dependencies once, after flag overrides
func (r *RootCommand) getApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	app, err := r.factory(r.config)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Server configuration
	flags.String("server-url", "", "Backend base URL (overrides TD_SERVER_URL)")
	flags.Duration("request-timeout", 0, "Per-request timeout (overrides TD_SERVER_REQUEST_TIMEOUT)")

	// Session configuration
	flags.String("session-dir", "", "Session store directory (overrides TD_SESSION_DIR)")
	flags.String("session-filename", "", "Session store filename (overrides TD_SESSION_FILENAME)")

	// Time configuration
	flags.String("time-format", "", "Time display format (overrides TD_TIME_DISPLAY_FORMAT)")
	flags.Bool("date-only", false, "Show date only in displays (overrides TD_DISPLAY_DATE_ONLY)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TD_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TD_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Login command
	loginCmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Log in to the backend",
		Long:  "Authenticate with the backend and store the session token locally.\nThe password is prompted for unless --password is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewLoginCommand(app)
			handler.Password, _ = cmd.Flags().GetString("password")
			return handler.Execute(ctx, args)
		},
	}
	loginCmd.Flags().String("password", "", "Password (prompted for when omitted)")

	// Signup command
	signupCmd := &cobra.Command{
		Use:   "signup [email] [name]",
		Short: "Create a new account",
		Long:  "Register a new account and log in.\nThe password is prompted for unless --password is given.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewSignupCommand(app)
			handler.Password, _ = cmd.Flags().GetString("password")
			return handler.Execute(ctx, args)
		},
	}
	signupCmd.Flags().String("password", "", "Password (prompted for when omitted)")

	// Logout command
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLogoutCommand(app).Execute(ctx, args)
		},
	}

	// Whoami command
	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long:  "Show the signed-in user as recorded in the stored session token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewWhoamiCommand(app).Execute(ctx, args)
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list [all|pending|completed]",
		Short: "List tasks",
		Long: `List your tasks with optional filtering, sorting and search.

Examples:
  td list                        # List all tasks, newest first
  td list pending                # Only incomplete tasks
  td list completed --sort title # Completed tasks in title order
  td list --search milk          # Case-insensitive search`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewListCommand(app)
			handler.Sort, _ = cmd.Flags().GetString("sort")
			handler.Search, _ = cmd.Flags().GetString("search")
			return handler.Execute(ctx, args)
		},
	}
	listCmd.Flags().String("sort", "", "Sort key: created_at or title (default created_at)")
	listCmd.Flags().String("search", "", "Case-insensitive search over title and description")

	// Add command
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewAddCommand(app)
			handler.Description, _ = cmd.Flags().GetString("desc")
			handler.Priority, _ = cmd.Flags().GetString("priority")
			handler.Due, _ = cmd.Flags().GetString("due")
			return handler.Execute(ctx, args)
		},
	}
	addCmd.Flags().String("desc", "", "Task description")
	addCmd.Flags().String("priority", "", "Priority: low, medium or high")
	addCmd.Flags().String("due", "", "Due date in YYYY-MM-DD format")

	// Edit command
	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an existing task",
		Long:  "Edit an existing task. Only fields whose flags are set are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewEditCommand(app)
			flags := cmd.Flags()
			if flags.Changed("title") {
				title, _ := flags.GetString("title")
				handler.Title = &title
			}
			if flags.Changed("desc") {
				desc, _ := flags.GetString("desc")
				handler.Description = &desc
			}
			if flags.Changed("priority") {
				priority, _ := flags.GetString("priority")
				handler.Priority = &priority
			}
			if flags.Changed("due") {
				due, _ := flags.GetString("due")
				handler.Due = &due
			}
			if flags.Changed("completed") {
				completed, _ := flags.GetBool("completed")
				handler.Completed = &completed
			}
			return handler.Execute(ctx, args)
		},
	}
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("desc", "", "New description")
	editCmd.Flags().String("priority", "", "New priority: low, medium or high")
	editCmd.Flags().String("due", "", "New due date in YYYY-MM-DD format")
	editCmd.Flags().Bool("completed", false, "Completion state")

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewDoneCommand(app).Execute(ctx, args)
		},
	}

	// Remove command
	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Long:  "Delete a task. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewRemoveCommand(app).Execute(ctx, args)
		},
	}

	// Dash command
	dashCmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive dashboard",
		Long: `Open a full-screen interactive dashboard.

Keys:
  a  add task          e  edit title        d  delete task
  space  toggle done   f  cycle filter      s  toggle sort
  /  search            r  refresh           t  toggle theme
  q  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			// Interactive sessions run without the application timeout
			return NewDashCommand(app).Execute(context.Background(), args)
		},
	}

	r.cmd.AddCommand(
		loginCmd,
		signupCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		addCmd,
		editCmd,
		doneCmd,
		rmCmd,
		dashCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	// Server configuration
	if serverURL, _ := flags.GetString("server-url"); serverURL != "" {
		r.config.Server.BaseURL = serverURL
	}
	if requestTimeout, _ := flags.GetDuration("request-timeout"); requestTimeout > 0 {
		r.config.Server.RequestTimeout = requestTimeout
	}

	// Session configuration
	if sessionDir, _ := flags.GetString("session-dir"); sessionDir != "" {
		r.config.Session.Dir = sessionDir
	}
	if sessionFilename, _ := flags.GetString("session-filename"); sessionFilename != "" {
		r.config.Session.Filename = sessionFilename
	}

	// Time configuration
	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Time.DisplayFormat = timeFormat
	}
	if dateOnly, _ := flags.GetBool("date-only"); dateOnly {
		r.config.Time.DateOnly = dateOnly
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
