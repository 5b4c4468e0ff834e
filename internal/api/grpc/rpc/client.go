package rpc

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/model"
)

// Client is a typed Compliance client. Its methods mirror the coordinator so
// callers can swap a remote service for an in-process one.
type Client struct {
	conn  grpc.ClientConnInterface
	token string
}

func NewClient(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{conn: conn, token: token}
}

// invoke calls method and returns the latency reported in the error trailer
// when the call fails.
func (c *Client) invoke(ctx context.Context, method string, in, out any) (time.Duration, error) {
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}

	var trailer metadata.MD
	err := c.conn.Invoke(ctx, method, in, out,
		grpc.CallContentSubtype(CodecName),
		grpc.Trailer(&trailer),
	)
	if err != nil {
		return latencyFromTrailer(trailer), fromStatus(err)
	}
	return 0, nil
}

func (c *Client) RegisterUser(ctx context.Context, params model.RegisterParams) (time.Duration, uuid.UUID, error) {
	req := &RegisterUserRequest{
		Name:    params.Name,
		Contact: params.Contact,
		Consent: params.Consent,
		Payload: params.Payload,
	}
	if params.UserID != uuid.Nil {
		req.UserID = params.UserID.String()
	}

	resp := &RegisterUserResponse{}
	latency, err := c.invoke(ctx, MethodRegisterUser, req, resp)
	if err != nil {
		return latency, uuid.Nil, err
	}

	id, err := uuid.Parse(resp.UserID)
	if err != nil {
		return time.Duration(resp.LatencyNs), uuid.Nil, fmt.Errorf("server returned invalid user id: %w", err)
	}
	return time.Duration(resp.LatencyNs), id, nil
}

func (c *Client) EraseUser(ctx context.Context, userID uuid.UUID) (time.Duration, error) {
	resp := &EraseUserResponse{}
	latency, err := c.invoke(ctx, MethodEraseUser, &EraseUserRequest{UserID: userID.String()}, resp)
	if err != nil {
		return latency, err
	}
	return time.Duration(resp.LatencyNs), nil
}

func (c *Client) AccessUser(ctx context.Context, userID uuid.UUID) (time.Duration, model.UserRecord, error) {
	resp := &AccessUserResponse{}
	latency, err := c.invoke(ctx, MethodAccessUser, &AccessUserRequest{UserID: userID.String()}, resp)
	if err != nil {
		return latency, model.UserRecord{}, err
	}
	return time.Duration(resp.LatencyNs), resp.User, nil
}

func (c *Client) UpdateConsent(ctx context.Context, userID uuid.UUID, consent model.Consent) (time.Duration, error) {
	resp := &UpdateConsentResponse{}
	latency, err := c.invoke(ctx, MethodUpdateConsent, &UpdateConsentRequest{UserID: userID.String(), Consent: consent}, resp)
	if err != nil {
		return latency, err
	}
	return time.Duration(resp.LatencyNs), nil
}

func (c *Client) ConsentHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, error) {
	resp := &ConsentHistoryResponse{}
	if _, err := c.invoke(ctx, MethodConsentHistory, &ConsentHistoryRequest{UserID: userID.String()}, resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) VerifyHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, int, error) {
	resp := &ConsentHistoryResponse{}
	if _, err := c.invoke(ctx, MethodConsentHistory, &ConsentHistoryRequest{UserID: userID.String(), Verify: true}, resp); err != nil {
		return nil, 0, err
	}
	return resp.Events, resp.Verified, nil
}

func latencyFromTrailer(md metadata.MD) time.Duration {
	values := md.Get(LatencyTrailer)
	if len(values) == 0 {
		return 0
	}
	ns, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(ns)
}

// fromStatus restores model sentinels. Codes shared by several sentinels
// carry the sentinel text at the start of the status message.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.NotFound:
		sentinel = model.ErrNotFound
	case codes.AlreadyExists:
		sentinel = model.ErrAlreadyExists
	case codes.DataLoss:
		sentinel = model.ErrTamperedEvent
	case codes.InvalidArgument:
		sentinel = byMessage(st.Message(), model.ErrInvalidConsent)
	case codes.Unavailable:
		sentinel = byMessage(st.Message(),
			model.ErrStoreUnavailable,
			model.ErrLedgerUnavailable,
			model.ErrVaultUnavailable,
		)
	}
	if sentinel == nil {
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

func byMessage(msg string, candidates ...error) error {
	for _, c := range candidates {
		if strings.HasPrefix(msg, c.Error()) {
			return c
		}
	}
	return nil
}
