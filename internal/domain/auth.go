package domain

import "time"

const PasswordGrantType = "password"

type Credentials struct {
	Username string
	Password string
}

// TokenGrant is the decoded body of a successful login response.
type TokenGrant struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// TokenInfo holds unverified claims read from a JWT access token. It is for
// display only and must never drive an authorization decision.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

func (t TokenInfo) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !t.ExpiresAt.After(now)
}
