package httpapi

import (
	"context"

	"github.com/akorchagin/authgate/internal/server/models"
)

// AuthService is the identity surface the HTTP layer depends on.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, rawSecret string) error
}

// TokenResolver maps a presented raw secret to its owning user, or rejects.
type TokenResolver interface {
	Resolve(ctx context.Context, rawSecret string) (*models.User, error)
}
