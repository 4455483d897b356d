package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the stored token", func(t *testing.T) {
		app, _, out := setupTestApp(t)
		token := testToken(t, map[string]string{"user_id": "user-1", "email": "alice@example.com"})
		require.NoError(t, app.session.SetToken(ctx, token))

		err := NewLogoutCommand(app).Execute(ctx, []string{})

		require.NoError(t, err)
		assert.False(t, app.session.IsAuthenticated(ctx))
		assert.Contains(t, out.String(), "Signed out")
	})

	t.Run("logging out while signed out is not an error", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewLogoutCommand(app).Execute(ctx, []string{})

		assert.NoError(t, err)
	})
}

func TestWhoamiCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("shows name and email from token claims", func(t *testing.T) {
		app, _, out := setupTestApp(t)
		token := testToken(t, map[string]string{
			"user_id": "user-1",
			"email":   "alice@example.com",
			"name":    "Alice",
		})
		require.NoError(t, app.session.SetToken(ctx, token))

		err := NewWhoamiCommand(app).Execute(ctx, []string{})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Alice <alice@example.com>")
		assert.Contains(t, out.String(), "Member since")
	})

	t.Run("name falls back to the email local part", func(t *testing.T) {
		app, _, out := setupTestApp(t)
		token := testToken(t, map[string]string{
			"user_id": "user-1",
			"email":   "bob@example.com",
		})
		require.NoError(t, app.session.SetToken(ctx, token))

		err := NewWhoamiCommand(app).Execute(ctx, []string{})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "bob <bob@example.com>")
	})

	t.Run("signed out", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewWhoamiCommand(app).Execute(ctx, []string{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "logged in")
	})
}
