package identity

import (
	"context"
	"fmt"

	"todobackend/config"
	"todobackend/models"
)

// Provider verifies session tokens issued by an external identity service and
// looks up the caller's role.
type Provider interface {
	// Authenticate verifies token and returns the caller. Invalid or expired tokens
	// yield an error wrapping core.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	ResolveRole(ctx context.Context, identity *models.Identity) (models.Role, error)
}

// NewProvider builds the provider selected by cfg.AuthProvider
func NewProvider(ctx context.Context, cfg *config.AppConfig) (Provider, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderClerk:
		return NewClerkProvider(cfg.ClerkConfig.SecretKey), nil
	case config.AuthProviderOIDC:
		return NewOIDCProvider(ctx, cfg.OIDCConfig)
	default:
		return nil, fmt.Errorf("unsupported auth provider: %q", cfg.AuthProvider)
	}
}

func roleFromString(role string) models.Role {
	if models.Role(role) == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleUser
}
