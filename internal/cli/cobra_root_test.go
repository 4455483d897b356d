package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/config"
)

func TestNewRootCommand(t *testing.T) {
	cfg := config.NewConfig()
	root := NewRootCommand(cfg, func(*config.Config) (*App, error) {
		t.Fatal("factory must not run during construction")
		return nil, nil
	})

	require.NotNil(t, root)
	assert.Equal(t, "td", root.cmd.Use)

	names := make([]string, 0)
	for _, sub := range root.cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"login", "signup", "logout", "whoami", "list", "add", "edit", "done", "rm", "dash"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	cfg := config.NewConfig()
	root := NewRootCommand(cfg, func(c *config.Config) (*App, error) {
		app, _, _ := setupTestApp(t)
		app.config = c
		return app, nil
	})

	root.cmd.SetArgs([]string{"--server-url", "http://example.com:9000", "--verbose", "logout"})
	err := root.Execute()

	require.NoError(t, err)
	assert.Equal(t, "http://example.com:9000", cfg.Server.BaseURL)
	assert.True(t, cfg.Application.Verbose)
}

func TestRootCommand_AppBuiltOnce(t *testing.T) {
	cfg := config.NewConfig()
	calls := 0
	root := NewRootCommand(cfg, func(*config.Config) (*App, error) {
		calls++
		app, _, _ := setupTestApp(t)
		return app, nil
	})

	_, err := root.getApp()
	require.NoError(t, err)
	_, err = root.getApp()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
