package common

import (
	"context"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
)

type contextKey string

const principalContextKey contextKey = "adminPrincipal"

// ContextWithPrincipal stores the authenticated admin into context.
func ContextWithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated admin from context.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(auth.Principal)
	return principal, ok
}
