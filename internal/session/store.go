package session

import (
	"context"
	"time"

	"taskdash/internal/domain"
	"taskdash/internal/repository/sqlite"
)

// Keys under which session state is persisted in the local store.
const (
	KeyToken        = "jwt_token"
	KeyTheme        = "theme"
	KeyStatusFilter = "status_filter"
	KeySortKey      = "sort_key"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Store wraps the local repository with the credential and preference
// operations the rest of the client needs. The presence of a token is
// the sole signal of "authenticated"; there is no validity check
// against the backend.
type Store struct {
	repo sqlite.Repository
}

// NewStore creates a new session store backed by the given repository
func NewStore(repo sqlite.Repository) *Store {
	return &Store{repo: repo}
}

// SetToken persists the bearer token, overwriting any previous one
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.SetValue(ctx, KeyToken, token)
}

// Token returns the persisted bearer token, or false when signed out
// or when the store cannot be read
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, err := s.repo.GetValue(ctx, KeyToken)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// ClearToken removes the persisted bearer token
func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo.DeleteValue(ctx, KeyToken)
}

// IsAuthenticated reports whether a token is currently persisted
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// CurrentUserID derives the user id from the persisted token's payload.
// It returns false on any decode failure and never panics.
func (s *Store) CurrentUserID(ctx context.Context) (string, bool) {
	token, ok := s.Token(ctx)
	if !ok {
		return "", false
	}

	claims, ok := decodeClaims(token)
	if !ok {
		return "", false
	}

	id := claims.UserID()
	if id == "" {
		return "", false
	}
	return id, true
}

// CurrentUser derives the signed-in user from the persisted token's
// payload. Name defaults to the local part of the email when no name
// claim exists; created_at defaults to now when absent or unparseable.
func (s *Store) CurrentUser(ctx context.Context) (*domain.User, bool) {
	token, ok := s.Token(ctx)
	if !ok {
		return nil, false
	}

	claims, ok := decodeClaims(token)
	if !ok {
		return nil, false
	}

	user := &domain.User{
		ID:    claims.UserID(),
		Email: claims.Email(),
		Name:  claims.Name(),
	}

	if user.Name == "" {
		if user.Email != "" {
			user.Name = domain.LocalPart(user.Email)
		} else {
			user.Name = "User"
		}
	}

	user.CreatedAt = timeNow()
	if createdAt := claims.CreatedAt(); createdAt != "" {
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			user.CreatedAt = parsed
		}
	}

	return user, true
}

// Theme returns the persisted theme preference, defaulting to "light"
func (s *Store) Theme(ctx context.Context) string {
	theme, err := s.repo.GetValue(ctx, KeyTheme)
	if err != nil || theme == "" {
		return "light"
	}
	return theme
}

// SetTheme persists the theme preference
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.repo.SetValue(ctx, KeyTheme, theme)
}

// DefaultStatusFilter returns the persisted status filter preference
func (s *Store) DefaultStatusFilter(ctx context.Context) domain.StatusFilter {
	value, err := s.repo.GetValue(ctx, KeyStatusFilter)
	if err != nil {
		return domain.StatusFilterAll
	}
	filter, err2 := domain.ParseStatusFilter(value)
	if err2 != nil {
		return domain.StatusFilterAll
	}
	return filter
}

// SetDefaultStatusFilter persists the status filter preference
func (s *Store) SetDefaultStatusFilter(ctx context.Context, filter domain.StatusFilter) error {
	return s.repo.SetValue(ctx, KeyStatusFilter, string(filter))
}

// DefaultSortKey returns the persisted sort key preference
func (s *Store) DefaultSortKey(ctx context.Context) domain.SortKey {
	value, err := s.repo.GetValue(ctx, KeySortKey)
	if err != nil {
		return domain.SortByCreatedAt
	}
	key, err2 := domain.ParseSortKey(value)
	if err2 != nil {
		return domain.SortByCreatedAt
	}
	return key
}

// SetDefaultSortKey persists the sort key preference
func (s *Store) SetDefaultSortKey(ctx context.Context, key domain.SortKey) error {
	return s.repo.SetValue(ctx, KeySortKey, string(key))
}
