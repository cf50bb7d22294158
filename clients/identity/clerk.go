package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"todobackend/core"
	"todobackend/models"
)

const clerkProviderName = "clerk"

type clerkUserGetter interface {
	Get(ctx context.Context, id string) (*clerk.User, error)
}

// ClerkProvider verifies Clerk session JWTs against the instance JWKS and reads the
// role from the user's public metadata.
type ClerkProvider struct {
	verify func(ctx context.Context, token string) (*clerk.SessionClaims, error)
	users  clerkUserGetter
}

func NewClerkProvider(secretKey string) *ClerkProvider {
	config := &clerk.ClientConfig{
		BackendConfig: clerk.BackendConfig{
			Key: clerk.String(secretKey),
		},
	}
	jwksClient := jwks.NewClient(config)

	return &ClerkProvider{
		verify: func(ctx context.Context, token string) (*clerk.SessionClaims, error) {
			return jwt.Verify(ctx, &jwt.VerifyParams{
				Token:      token,
				JWKSClient: jwksClient,
			})
		},
		users: user.NewClient(config),
	}
}

func (p *ClerkProvider) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("empty session token: %w", core.ErrUnauthorized)
	}

	claims, err := p.verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("clerk token verification failed: %v: %w", err, core.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("clerk token has no subject: %w", core.ErrUnauthorized)
	}

	return &models.Identity{
		UserID:   claims.Subject,
		Provider: clerkProviderName,
		Claims:   map[string]any{"sub": claims.Subject},
	}, nil
}

func (p *ClerkProvider) ResolveRole(ctx context.Context, identity *models.Identity) (models.Role, error) {
	if identity == nil || identity.UserID == "" {
		return "", fmt.Errorf("no identity to resolve: %w", core.ErrUnauthorized)
	}

	clerkUser, err := p.users.Get(ctx, identity.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch clerk user %s: %w", identity.UserID, err)
	}

	role := RoleFromPublicMetadata(clerkUser.PublicMetadata)
	log.Printf("🔐 Resolved role %s for clerk user %s", role, identity.UserID)
	return role, nil
}

// RoleFromPublicMetadata reads the "role" key of a Clerk public_metadata document.
// Anything other than "admin", including malformed metadata, is a plain user.
func RoleFromPublicMetadata(raw json.RawMessage) models.Role {
	if len(raw) == 0 {
		return models.RoleUser
	}

	var metadata struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		log.Printf("⚠️ Ignoring malformed clerk public metadata: %v", err)
		return models.RoleUser
	}
	return roleFromString(metadata.Role)
}
