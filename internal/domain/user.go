package domain

import (
	"strings"
	"time"
)

// User represents the signed-in user as derived from the bearer token
// or returned by the auth endpoints.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the user's name, falling back to the email
// when no name is set.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// LocalPart returns the part of an email address before the '@'.
// It returns the input unchanged when there is no '@'.
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// AuthResponse is the payload returned by the login and signup endpoints.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
