package main

import (
	"fmt"
	"os"

	"taskdash/internal/api"
	"taskdash/internal/cli"
	"taskdash/internal/config"
	"taskdash/internal/logging"
	"taskdash/internal/session"
)

func main() {
	// Load configuration from defaults and environment; command-line
	// flag overrides are applied by the root command before any
	// subcommand runs.
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, buildApp)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildApp constructs the application dependencies once the final
// configuration is known.
func buildApp(cfg *config.Config) (*cli.App, error) {
	logger, err := logging.New(cfg.Application.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	factory := NewStoreFactory(getEnvironment())
	repo, err := factory.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(repo)
	client := api.New(cfg, store, logger)
	return cli.NewApp(client, store, cfg, logger), nil
}
