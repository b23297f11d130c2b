package middleware

import (
	"context"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	identityKey  = contextKey("identity")
	principalKey = contextKey("principal")
)

// Identity is the external login carried by the caller's bearer token.
type Identity struct {
	Provider   string
	ExternalID string
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin context.
func GetIdentityFromContext(c *gin.Context) (Identity, bool) {
	if v, exists := c.Get(string(identityKey)); exists {
		id, ok := v.(Identity)
		return id, ok
	}
	return Identity{}, false
}

// GetPrincipalFromContext retrieves the resolved principal of the caller. It is
// absent when the caller's identity is not bound to any principal yet.
func GetPrincipalFromContext(c *gin.Context) (*domain.ResolvedPrincipal, bool) {
	if v, exists := c.Get(string(principalKey)); exists {
		rp, ok := v.(*domain.ResolvedPrincipal)
		return rp, ok && rp != nil
	}
	return GetPrincipalFromCtx(c.Request.Context())
}

// GetPrincipalFromCtx is the context.Context counterpart of GetPrincipalFromContext.
func GetPrincipalFromCtx(ctx context.Context) (*domain.ResolvedPrincipal, bool) {
	rp, ok := ctx.Value(principalKey).(*domain.ResolvedPrincipal)
	return rp, ok && rp != nil
}
