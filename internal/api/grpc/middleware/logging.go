package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/logger"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	l.logger.Debug("gRPC request started",
		"method", info.FullMethod)

	resp, err := handler(ctx, req)

	duration := time.Since(start)
	statusCode := status.Code(err)
	if _, ok := status.FromError(err); !ok {
		statusCode = codes.Internal
	}

	if err != nil {
		l.logger.Warn("gRPC request failed",
			"method", info.FullMethod,
			"duration", duration,
			"status", statusCode.String(),
			"error", err.Error())
		return resp, err
	}

	l.logger.Info("gRPC request completed",
		"method", info.FullMethod,
		"duration", duration,
		"status", statusCode.String())

	return resp, nil
}
