package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
)

// TokenParser resolves the caller name from a bearer token.
type TokenParser interface {
	ParseAccessToken(token string) (string, error)
}

// Authenticate validates bearer tokens and injects the caller into context.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header and returns a context carrying
// the caller name.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	caller, err := m.tokens.ParseAccessToken(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetCallerToContext(ctx, caller), nil
}
