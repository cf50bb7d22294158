package identity

import (
	"context"
	"fmt"
	"log"

	"github.com/coreos/go-oidc/v3/oidc"

	"todobackend/config"
	"todobackend/core"
	"todobackend/models"
)

const oidcProviderName = "oidc"

// OIDCProvider verifies ID tokens from a generic OpenID Connect issuer. The role is
// carried in the token itself under a configurable claim.
type OIDCProvider struct {
	verifier  *oidc.IDTokenVerifier
	roleClaim string
}

// NewOIDCProvider discovers the issuer configuration. It fails when the issuer
// cannot be reached so that a misconfigured server does not start.
func NewOIDCProvider(ctx context.Context, cfg config.OIDCConfig) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query OIDC provider %s: %w", cfg.IssuerURL, err)
	}

	return NewOIDCProviderWithVerifier(provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), cfg.RoleClaim), nil
}

func NewOIDCProviderWithVerifier(verifier *oidc.IDTokenVerifier, roleClaim string) *OIDCProvider {
	if roleClaim == "" {
		roleClaim = "role"
	}
	return &OIDCProvider{verifier: verifier, roleClaim: roleClaim}
}

func (p *OIDCProvider) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("empty id token: %w", core.ErrUnauthorized)
	}

	idToken, err := p.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("oidc token verification failed: %v: %w", err, core.ErrUnauthorized)
	}

	claims := map[string]any{}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("invalid token claims: %v: %w", err, core.ErrUnauthorized)
	}
	if idToken.Subject == "" {
		return nil, fmt.Errorf("oidc token has no subject: %w", core.ErrUnauthorized)
	}

	return &models.Identity{
		UserID:   idToken.Subject,
		Provider: oidcProviderName,
		Claims:   claims,
	}, nil
}

func (p *OIDCProvider) ResolveRole(ctx context.Context, identity *models.Identity) (models.Role, error) {
	if identity == nil || identity.UserID == "" {
		return "", fmt.Errorf("no identity to resolve: %w", core.ErrUnauthorized)
	}
	return RoleFromClaims(identity.Claims, p.roleClaim), nil
}

// RoleFromClaims reads claim as either a single role string or a list of roles
// (the shape Keycloak and Authentik use). A list containing "admin" is an admin.
func RoleFromClaims(claims map[string]any, claim string) models.Role {
	switch value := claims[claim].(type) {
	case string:
		return roleFromString(value)
	case []any:
		for _, v := range value {
			if s, ok := v.(string); ok && roleFromString(s) == models.RoleAdmin {
				return models.RoleAdmin
			}
		}
	case nil:
	default:
		log.Printf("⚠️ Unexpected type %T for role claim %q", value, claim)
	}
	return models.RoleUser
}
