package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the client's view of an authentication session.
// Authenticated always equals (Token != ""); construct sessions through
// NewSession or the zero value to preserve the invariant.
type Session struct {
	User          *User  `json:"user,omitempty"`
	Token         string `json:"token,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// NewSession creates a session from a profile and bearer token
func NewSession(user *User, token string) Session {
	return Session{
		User:          user,
		Token:         token,
		Authenticated: token != "",
	}
}

// Role returns the session's role, or empty when anonymous
func (s *Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// TokenExpired reports whether the bearer token carries an exp claim in the
// past. The token is parsed without signature verification: the client never
// holds the signing secret, and the server remains authoritative (an expired
// or forged token is rejected with a 401 on the next call either way).
// Malformed tokens and tokens without exp are treated as not expired.
func (s *Session) TokenExpired(now time.Time) bool {
	if s.Token == "" {
		return false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
