package session

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// Claims holds the decoded payload of a bearer token.
// The token is treated as an opaque credential; decoding is
// best-effort and for display purposes only. No signature or
// expiry verification is performed.
type Claims map[string]interface{}

// decodeClaims decodes the middle segment of a JWT-shaped token as
// base64 JSON. It returns false on any malformed input and never panics.
func decodeClaims(token string) (Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil, false
	}

	payload, ok := decodeBase64(parts[1])
	if !ok {
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	return claims, true
}

// decodeBase64 tries the JWT base64url alphabet first, then falls back
// to standard base64 for tokens minted by looser encoders.
func decodeBase64(segment string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	} {
		if decoded, err := enc.DecodeString(segment); err == nil {
			return decoded, true
		}
	}
	return nil, false
}

// stringClaim returns the claim under key as a string. Numeric claims
// are stringified so integer user ids survive the round trip.
func (c Claims) stringClaim(key string) string {
	value, ok := c[key]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// UserID returns the user id claim, preferring "user_id" over "id".
func (c Claims) UserID() string {
	if id := c.stringClaim("user_id"); id != "" {
		return id
	}
	return c.stringClaim("id")
}

// Email returns the email claim.
func (c Claims) Email() string {
	return c.stringClaim("email")
}

// Name returns the name claim.
func (c Claims) Name() string {
	return c.stringClaim("name")
}

// CreatedAt returns the created_at claim.
func (c Claims) CreatedAt() string {
	return c.stringClaim("created_at")
}
