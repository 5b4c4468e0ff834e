package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/api/grpc/rpc"
	"github.com/dtroode/sesn-compliance/internal/mocks"
	"github.com/dtroode/sesn-compliance/internal/model"
	"github.com/dtroode/sesn-compliance/internal/testutil"
)

func newHandler(t *testing.T) (*Compliance, *mocks.ComplianceService) {
	t.Helper()

	svc := mocks.NewComplianceService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Return("tester", true).Maybe()

	return NewCompliance(svc, cm, testutil.MakeNoopLogger()), svc
}

func TestCompliance_RegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("server picks id", func(t *testing.T) {
		h, svc := newHandler(t)
		id := uuid.New()
		svc.On("RegisterUser", mock.Anything, mock.MatchedBy(func(p model.RegisterParams) bool {
			return p.UserID == uuid.Nil && p.Name == "User0001" && p.Consent[model.ConsentDataProcessing]
		})).Return(2*time.Millisecond, id, nil).Once()

		resp, err := h.RegisterUser(context.Background(), &rpc.RegisterUserRequest{
			Name:    "User0001",
			Consent: map[string]bool{model.ConsentDataProcessing: true},
		})
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.UserID)
		assert.Equal(t, (2 * time.Millisecond).Nanoseconds(), resp.LatencyNs)
	})

	t.Run("invalid user id", func(t *testing.T) {
		h, _ := newHandler(t)
		_, err := h.RegisterUser(context.Background(), &rpc.RegisterUserRequest{UserID: "u1"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("already exists", func(t *testing.T) {
		h, svc := newHandler(t)
		id := uuid.New()
		svc.On("RegisterUser", mock.Anything, mock.Anything).
			Return(time.Millisecond, id, &model.OperationError{Op: model.OperationRegister, Step: "issue_keys", Err: model.ErrAlreadyExists}).Once()

		_, err := h.RegisterUser(context.Background(), &rpc.RegisterUserRequest{UserID: id.String()})
		st, _ := status.FromError(err)
		assert.Equal(t, codes.AlreadyExists, st.Code())
		assert.Contains(t, st.Message(), "issue_keys")
	})
}

func TestCompliance_EraseUser(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	svc.On("EraseUser", mock.Anything, id).Return(3*time.Millisecond, nil).Once()

	resp, err := h.EraseUser(context.Background(), &rpc.EraseUserRequest{UserID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), resp.LatencyNs)

	_, err = h.EraseUser(context.Background(), &rpc.EraseUserRequest{UserID: ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCompliance_EraseUser_PartialFailure(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	svc.On("EraseUser", mock.Anything, id).Return(time.Millisecond, &model.OperationError{
		Op:    model.OperationErase,
		Step:  "delete_record",
		State: model.StateStep1Done,
		Err:   model.ErrStoreUnavailable,
	}).Once()

	_, err := h.EraseUser(context.Background(), &rpc.EraseUserRequest{UserID: id.String()})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unavailable, st.Code())
	assert.Equal(t, "record store unavailable at step delete_record", st.Message())
}

func TestCompliance_AccessUser(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	record := model.UserRecord{ID: id, Name: "User0001", Consent: model.Consent{model.ConsentSharing: true}}
	svc.On("AccessUser", mock.Anything, id).Return(time.Millisecond, record, nil).Once()

	missing := uuid.New()
	svc.On("AccessUser", mock.Anything, missing).Return(time.Millisecond, model.UserRecord{}, model.ErrNotFound).Once()

	resp, err := h.AccessUser(context.Background(), &rpc.AccessUserRequest{UserID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, record, resp.User)

	_, err = h.AccessUser(context.Background(), &rpc.AccessUserRequest{UserID: missing.String()})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCompliance_UpdateConsent(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	consent := model.Consent{model.ConsentProfiling: true}
	svc.On("UpdateConsent", mock.Anything, id, consent).Return(time.Millisecond, nil).Once()

	resp, err := h.UpdateConsent(context.Background(), &rpc.UpdateConsentRequest{UserID: id.String(), Consent: consent})
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond.Nanoseconds(), resp.LatencyNs)
}

func TestCompliance_ConsentHistory(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	events := []model.ConsentEvent{{ID: uuid.New(), UserID: id, Operation: model.LedgerOperationGranted}}
	svc.On("ConsentHistory", mock.Anything, id).Return(events, nil).Once()
	svc.On("VerifyHistory", mock.Anything, id).Return(events, 1, nil).Once()

	resp, err := h.ConsentHistory(context.Background(), &rpc.ConsentHistoryRequest{UserID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, events, resp.Events)
	assert.Zero(t, resp.Verified)

	resp, err = h.ConsentHistory(context.Background(), &rpc.ConsentHistoryRequest{UserID: id.String(), Verify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Verified)
	assert.Equal(t, events, resp.Events)
	svc.AssertNumberOfCalls(t, "ConsentHistory", 1)
}

func TestCompliance_ConsentHistory_Tampered(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t)
	id := uuid.New()
	svc.On("VerifyHistory", mock.Anything, id).Return(nil, 0, model.ErrTamperedEvent).Once()

	_, err := h.ConsentHistory(context.Background(), &rpc.ConsentHistoryRequest{UserID: id.String(), Verify: true})
	assert.Equal(t, codes.DataLoss, status.Code(err))
}
