package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID       ContextKey = "ctx_request_id"
	CtxActorID         ContextKey = "ctx_actor_id"
	CtxRoles           ContextKey = "ctx_roles"
	CtxIsAuthenticated ContextKey = "ctx_is_authenticated"

	// SystemActorID attributes mutations performed outside an authenticated
	// request (bootstrap, scripts) in the revision log.
	SystemActorID = "SYSTEM"
)

// GetActorID returns the resolved caller identity, falling back to the system
// identity when the request carries no authenticated actor.
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(CtxActorID).(string); ok && actorID != "" {
		return actorID
	}
	return SystemActorID
}

// IsAuthenticated reports whether the context carries a resolved actor identity.
func IsAuthenticated(ctx context.Context) bool {
	if authed, ok := ctx.Value(CtxIsAuthenticated).(bool); ok {
		return authed
	}
	return false
}

// GetRoles returns the caller's role set from the context
func GetRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(CtxRoles).([]string); ok {
		return roles
	}
	return []string{}
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetActorID sets the actor ID in the context
func SetActorID(ctx context.Context, actorID string) context.Context {
	ctx = context.WithValue(ctx, CtxActorID, actorID)
	return context.WithValue(ctx, CtxIsAuthenticated, true)
}

// SetRoles sets the caller's role set in the context
func SetRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, CtxRoles, roles)
}
