package auth

import (
	"github.com/bnema/chargectl/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// InspectAccessToken reads the subject and expiry of a JWT access token
// without verifying its signature. ok is false for opaque tokens.
func InspectAccessToken(raw string) (domain.TokenInfo, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return domain.TokenInfo{}, false
	}

	var info domain.TokenInfo
	if subject, err := claims.GetSubject(); err == nil {
		info.Subject = subject
	}
	if expiresAt, err := claims.GetExpirationTime(); err == nil && expiresAt != nil {
		info.ExpiresAt = expiresAt.Time
	}

	return info, true
}
