package handlers

import (
	"context"
	"net/http"

	"skillsyncBack/internal/models"
)

type contextKey string

const identityContextKey = contextKey("identity")

// WithIdentity stores the verified caller on the request context.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, &identity)
}

// IdentityFrom returns the caller or nil for anonymous requests.
func IdentityFrom(r *http.Request) *models.Identity {
	identity, _ := r.Context().Value(identityContextKey).(*models.Identity)
	return identity
}
