package shared

import (
	"context"

	"github.com/google/uuid"
)

type identityContextKey struct{}

// Identity describes the authenticated caller as supplied by the host.
// The service performs no authentication of its own; the identity is a
// precondition established upstream.
type Identity struct {
	UserID uuid.UUID
}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
