package workload

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sesn-compliance/internal/model"
	"github.com/dtroode/sesn-compliance/internal/testutil"
)

type fakeCoordinator struct {
	mu       sync.Mutex
	users    map[uuid.UUID]model.Consent
	calls    map[model.Operation]int
	failNext bool
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{
		users: make(map[uuid.UUID]model.Consent),
		calls: make(map[model.Operation]int),
	}
}

func (f *fakeCoordinator) RegisterUser(_ context.Context, p model.RegisterParams) (time.Duration, uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[model.OperationRegister]++
	if f.failNext {
		f.failNext = false
		return time.Millisecond, uuid.Nil, model.ErrVaultUnavailable
	}
	f.users[p.UserID] = p.Consent
	return time.Millisecond, p.UserID, nil
}

func (f *fakeCoordinator) EraseUser(_ context.Context, id uuid.UUID) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[model.OperationErase]++
	delete(f.users, id)
	return 2 * time.Millisecond, nil
}

func (f *fakeCoordinator) AccessUser(_ context.Context, id uuid.UUID) (time.Duration, model.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[model.OperationAccess]++
	if _, ok := f.users[id]; !ok {
		return time.Millisecond, model.UserRecord{}, model.ErrNotFound
	}
	return time.Millisecond, model.UserRecord{ID: id}, nil
}

func (f *fakeCoordinator) UpdateConsent(_ context.Context, id uuid.UUID, _ model.Consent) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[model.OperationConsent]++
	if _, ok := f.users[id]; !ok {
		return 3 * time.Millisecond, model.ErrNotFound
	}
	return 3 * time.Millisecond, nil
}

func TestGenerateUsers(t *testing.T) {
	users := GenerateUsers(rand.New(rand.NewPCG(1, 2)), 50)
	require.Len(t, users, 50)

	seen := make(map[uuid.UUID]bool)
	for _, u := range users {
		assert.False(t, seen[u.UserID])
		seen[u.UserID] = true

		assert.Regexp(t, `^User\d{4}$`, u.Name)
		assert.Regexp(t, `^user\d{5,6}@sesn\.org$`, u.Contact)
		assert.True(t, u.Consent[model.ConsentDataProcessing])
		assert.Contains(t, u.Consent, model.ConsentProfiling)
		assert.Contains(t, u.Consent, model.ConsentSharing)
		assert.NoError(t, u.Consent.Validate())
		assert.NotEmpty(t, u.Payload)
	}
}

func TestCSVRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewCSVRecorder(&buf)
	require.NoError(t, err)

	require.NoError(t, rec.Record(Sample{Operation: model.OperationErase, Requests: 100, Latency: 1500 * time.Microsecond}))
	require.NoError(t, rec.Record(Sample{Operation: model.OperationAccess, Requests: 100, Latency: time.Millisecond, Err: model.ErrNotFound}))
	require.NoError(t, rec.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"operation", "requests", "latency", "error"}, rows[0])
	assert.Equal(t, []string{"RTBF", "100", "0.001500", ""}, rows[1])
	assert.Equal(t, "DAR", rows[2][0])
	assert.Equal(t, model.ErrNotFound.Error(), rows[2][3])
}

func TestDriver_Seed(t *testing.T) {
	coord := newFakeCoordinator()
	coord.failNext = true
	d := NewDriver(coord, 1, time.Second, rand.New(rand.NewPCG(1, 2)), testutil.MakeNoopLogger())

	users := GenerateUsers(rand.New(rand.NewPCG(3, 4)), 5)
	seeded, err := d.Seed(context.Background(), users)
	require.NoError(t, err)
	assert.Len(t, seeded, 4)
	assert.Equal(t, 5, coord.calls[model.OperationRegister])
}

func TestDriver_Run(t *testing.T) {
	coord := newFakeCoordinator()
	d := NewDriver(coord, 4, time.Second, rand.New(rand.NewPCG(1, 2)), testutil.MakeNoopLogger())

	seeded, err := d.Seed(context.Background(), GenerateUsers(rand.New(rand.NewPCG(5, 6)), 20))
	require.NoError(t, err)

	var buf bytes.Buffer
	rec, err := NewCSVRecorder(&buf)
	require.NoError(t, err)

	stats, err := d.Run(context.Background(), seeded, []int{10, 30}, rec)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	for i, level := range []int{10, 30} {
		assert.Equal(t, level, stats[i].Requests)
		for _, op := range []model.Operation{model.OperationErase, model.OperationAccess, model.OperationConsent} {
			assert.Equal(t, level, stats[i].Operations[op].Count, "level %d op %s", level, op)
		}
		assert.Equal(t, 2*time.Millisecond, stats[i].Operations[model.OperationErase].Mean())
		assert.Equal(t, 3*time.Millisecond, stats[i].Operations[model.OperationConsent].Mean())
		assert.Equal(t, level, stats[i].Operations[model.OperationAccess].Errors)
	}

	assert.Equal(t, 40, coord.calls[model.OperationErase])

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1+3*40)
}

func TestDriver_Run_NoUsers(t *testing.T) {
	d := NewDriver(newFakeCoordinator(), 1, 0, rand.New(rand.NewPCG(1, 2)), testutil.MakeNoopLogger())
	var buf bytes.Buffer
	rec, err := NewCSVRecorder(&buf)
	require.NoError(t, err)

	_, err = d.Run(context.Background(), nil, []int{10}, rec)
	assert.Error(t, err)
}

func TestDriver_Run_Cancelled(t *testing.T) {
	coord := newFakeCoordinator()
	d := NewDriver(coord, 2, 0, rand.New(rand.NewPCG(1, 2)), testutil.MakeNoopLogger())
	var buf bytes.Buffer
	rec, err := NewCSVRecorder(&buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx, []SeededUser{{ID: uuid.New()}}, []int{100}, rec)
	assert.ErrorIs(t, err, context.Canceled)
}
