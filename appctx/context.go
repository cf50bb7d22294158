package appctx

import (
	"context"

	"todobackend/models"
)

type contextKey string

const IdentityContextKey contextKey = "identity"

// SetIdentity adds the verified caller to the request context
func SetIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentity extracts the verified caller from the request context.
// An identity with an empty user id is treated as absent.
func GetIdentity(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*models.Identity)
	if !ok || identity == nil || identity.UserID == "" {
		return nil, false
	}
	return identity, true
}
