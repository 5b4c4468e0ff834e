package context

import (
	"context"
)

type callerKey struct{}

// Manager stores the authenticated caller in request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns a copy of ctx carrying caller.
func (m *Manager) SetCallerToContext(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCallerFromContext returns the caller set by the authentication
// interceptor.
func (m *Manager) GetCallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey{}).(string)
	if !ok || caller == "" {
		return "", false
	}
	return caller, true
}
