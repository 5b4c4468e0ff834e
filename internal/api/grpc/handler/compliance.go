package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/api/grpc/rpc"
	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
)

// ComplianceService defines the coordinator operations exposed over gRPC.
type ComplianceService interface {
	RegisterUser(ctx context.Context, params model.RegisterParams) (time.Duration, uuid.UUID, error)
	EraseUser(ctx context.Context, userID uuid.UUID) (time.Duration, error)
	AccessUser(ctx context.Context, userID uuid.UUID) (time.Duration, model.UserRecord, error)
	UpdateConsent(ctx context.Context, userID uuid.UUID, consent model.Consent) (time.Duration, error)
	ConsentHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, error)
	VerifyHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, int, error)
}

// Compliance handles gRPC endpoints of the compliance coordinator.
type Compliance struct {
	service        ComplianceService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ rpc.ComplianceServer = (*Compliance)(nil)

// NewCompliance creates a new Compliance handler.
func NewCompliance(service ComplianceService, contextManager model.ContextManager, logger *logger.Logger) *Compliance {
	return &Compliance{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

// RegisterUser onboards a user. An empty user_id lets the server pick one.
func (h *Compliance) RegisterUser(ctx context.Context, req *rpc.RegisterUserRequest) (*rpc.RegisterUserResponse, error) {
	params := model.RegisterParams{
		Name:    req.Name,
		Contact: req.Contact,
		Consent: req.Consent,
		Payload: req.Payload,
	}
	if req.UserID != "" {
		id, err := parseUserID(req.UserID)
		if err != nil {
			return nil, err
		}
		params.UserID = id
	}

	latency, userID, err := h.service.RegisterUser(ctx, params)
	if err != nil {
		return nil, h.fail(ctx, "register", userID, latency, err)
	}

	h.logger.Info("Compliance handler: user registered",
		"caller", h.caller(ctx),
		"user_id", userID,
		"latency", latency)

	return &rpc.RegisterUserResponse{UserID: userID.String(), LatencyNs: latency.Nanoseconds()}, nil
}

// EraseUser runs the right-to-be-forgotten flow.
func (h *Compliance) EraseUser(ctx context.Context, req *rpc.EraseUserRequest) (*rpc.EraseUserResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	latency, err := h.service.EraseUser(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "erase", userID, latency, err)
	}

	h.logger.Info("Compliance handler: user erased",
		"caller", h.caller(ctx),
		"user_id", userID,
		"latency", latency)

	return &rpc.EraseUserResponse{LatencyNs: latency.Nanoseconds()}, nil
}

// AccessUser answers a data access request.
func (h *Compliance) AccessUser(ctx context.Context, req *rpc.AccessUserRequest) (*rpc.AccessUserResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	latency, record, err := h.service.AccessUser(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "access", userID, latency, err)
	}

	return &rpc.AccessUserResponse{User: record, LatencyNs: latency.Nanoseconds()}, nil
}

// UpdateConsent replaces the consent of a user and records it in the ledger.
func (h *Compliance) UpdateConsent(ctx context.Context, req *rpc.UpdateConsentRequest) (*rpc.UpdateConsentResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	latency, err := h.service.UpdateConsent(ctx, userID, req.Consent)
	if err != nil {
		return nil, h.fail(ctx, "update consent", userID, latency, err)
	}

	return &rpc.UpdateConsentResponse{LatencyNs: latency.Nanoseconds()}, nil
}

// ConsentHistory lists ledger events of a user, optionally verifying them.
func (h *Compliance) ConsentHistory(ctx context.Context, req *rpc.ConsentHistoryRequest) (*rpc.ConsentHistoryResponse, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Verify {
		events, verified, err := h.service.VerifyHistory(ctx, userID)
		if err != nil {
			return nil, h.fail(ctx, "verify history", userID, 0, err)
		}
		return &rpc.ConsentHistoryResponse{Events: events, Verified: verified}, nil
	}

	events, err := h.service.ConsentHistory(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "consent history", userID, 0, err)
	}

	return &rpc.ConsentHistoryResponse{Events: events}, nil
}

// fail logs err, attaches the latency trailer and converts err to a status.
func (h *Compliance) fail(ctx context.Context, action string, userID uuid.UUID, latency time.Duration, err error) error {
	h.logger.Error("Compliance handler: "+action+" failed",
		"caller", h.caller(ctx),
		"user_id", userID,
		"latency", latency,
		"error", err.Error())

	if latency > 0 {
		trailer := metadata.Pairs(rpc.LatencyTrailer, strconv.FormatInt(latency.Nanoseconds(), 10))
		if tErr := grpc.SetTrailer(ctx, trailer); tErr != nil {
			h.logger.Debug("Compliance handler: failed to set latency trailer", "error", tErr.Error())
		}
	}

	return handleError(err)
}

func (h *Compliance) caller(ctx context.Context) string {
	caller, ok := h.contextManager.GetCallerFromContext(ctx)
	if !ok {
		return "anonymous"
	}
	return caller
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "invalid user id")
	}
	return id, nil
}
