package scope

import (
	"context"

	"admissions-srv/internal/model"
)

type contextKey int

const (
	scopeKey contextKey = iota
	payloadKey
)

// SetScopeToContext returns a copy of ctx carrying the scope.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, sc)
}

// GetScopeFromContext extracts the scope from ctx.
// Returns the zero scope when none is set.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeKey).(model.Scope)
	return sc
}

// SetPayloadToContext returns a copy of ctx carrying the token payload.
func SetPayloadToContext(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, payloadKey, p)
}

// GetPayloadFromContext extracts the token payload from ctx.
func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(payloadKey).(Payload)
	return p, ok
}
