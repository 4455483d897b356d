package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskdash/internal/errors"
	"taskdash/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for the local session store.
// It is a small key/value surface: the bearer token lives under a
// fixed key, alongside persisted UI preferences.
type Repository interface {
	SetValue(ctx context.Context, key, value string) error
	GetValue(ctx context.Context, key string) (string, error)
	DeleteValue(ctx context.Context, key string) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open session store", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SetValue stores a value under the given key, overwriting any previous value
func (r *SQLiteRepository) SetValue(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO session_values (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.NewStorageError("set value", err)
	}
	return nil
}

// GetValue retrieves the value stored under the given key.
// A missing key is reported as a not found error.
func (r *SQLiteRepository) GetValue(ctx context.Context, key string) (string, error) {
	query := `
	SELECT value
	FROM session_values
	WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError("session value", key)
	}
	if err != nil {
		return "", errors.NewStorageError("get value", err)
	}
	return value, nil
}

// DeleteValue removes the value stored under the given key.
// Deleting a missing key is not an error.
func (r *SQLiteRepository) DeleteValue(ctx context.Context, key string) error {
	query := `
	DELETE FROM session_values
	WHERE key = ?`

	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return errors.NewStorageError("delete value", err)
	}
	return nil
}
