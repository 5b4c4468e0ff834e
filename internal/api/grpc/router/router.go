package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/api/grpc/handler"
	"github.com/dtroode/sesn-compliance/internal/api/grpc/middleware"
	"github.com/dtroode/sesn-compliance/internal/api/grpc/rpc"
	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
)

// Router wires the Compliance service and its interceptors into a gRPC server.
type Router struct {
	service        handler.ComplianceService
	tokens         middleware.TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

func New(
	service handler.ComplianceService,
	tokens middleware.TokenParser,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		service:        service,
		tokens:         tokens,
		contextManager: contextManager,
		logger:         logger,
	}
}

// authRequired limits authentication to the Compliance service so health
// probes stay anonymous.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+rpc.ServiceName+"/")
}

// Register builds the gRPC server with logging, panic recovery and
// authentication interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	recoverPanic := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		r.logger.Error("gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverPanic),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverPanic),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	rpc.RegisterComplianceServer(s, handler.NewCompliance(r.service, r.contextManager, r.logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	return s
}
