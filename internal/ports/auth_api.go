package ports

import (
	"context"

	"github.com/bnema/chargectl/internal/domain"
)

type AuthAPI interface {
	PasswordGrant(ctx context.Context, credentials domain.Credentials) (domain.TokenGrant, error)
	FetchProfile(ctx context.Context, token string) (domain.UserProfile, error)
}
