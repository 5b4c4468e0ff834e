// Package workload replays GDPR request mixes against the compliance
// coordinator and records per-operation latency.
package workload

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
)

// Coordinator is the subset of the compliance API the driver exercises. Both
// the in-process service and the gRPC client satisfy it.
type Coordinator interface {
	RegisterUser(ctx context.Context, params model.RegisterParams) (time.Duration, uuid.UUID, error)
	EraseUser(ctx context.Context, userID uuid.UUID) (time.Duration, error)
	AccessUser(ctx context.Context, userID uuid.UUID) (time.Duration, model.UserRecord, error)
	UpdateConsent(ctx context.Context, userID uuid.UUID, consent model.Consent) (time.Duration, error)
}

// SeededUser is a registered user the driver can pick for rounds.
type SeededUser struct {
	ID      uuid.UUID
	Consent model.Consent
}

// OperationStats aggregates samples of one operation at one level.
type OperationStats struct {
	Count  int
	Errors int
	Total  time.Duration
}

// Mean returns the average latency.
func (s OperationStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// LevelStats holds aggregates for one workload level.
type LevelStats struct {
	Requests   int
	Operations map[model.Operation]OperationStats
}

// Driver runs workload levels with a bounded pool of workers.
type Driver struct {
	coordinator Coordinator
	concurrency int
	timeout     time.Duration
	logger      *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDriver(coordinator Coordinator, concurrency int, timeout time.Duration, rng *rand.Rand, logger *logger.Logger) *Driver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Driver{
		coordinator: coordinator,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
		rng:         rng,
	}
}

// Seed registers users and returns those that were registered. Failed
// registrations are logged and skipped.
func (d *Driver) Seed(ctx context.Context, users []model.RegisterParams) ([]SeededUser, error) {
	var (
		mu     sync.Mutex
		seeded = make([]SeededUser, 0, len(users))
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for _, u := range users {
		g.Go(func() error {
			callCtx, cancel := d.callContext(gctx)
			defer cancel()

			_, id, err := d.coordinator.RegisterUser(callCtx, u)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				d.logger.Warn("Workload: failed to register user", "error", err.Error())
				return nil
			}
			seeded = append(seeded, SeededUser{ID: id, Consent: u.Consent})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(seeded) == 0 && len(users) > 0 {
		return nil, fmt.Errorf("no users registered, %d failed", failed)
	}

	d.logger.Info("Workload: users seeded", "registered", len(seeded), "failed", failed)
	return seeded, nil
}

// Run executes every level. Each round picks a random user and issues an
// erasure, an access request and a consent update, in that order.
func (d *Driver) Run(ctx context.Context, users []SeededUser, levels []int, rec *CSVRecorder) ([]LevelStats, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to drive")
	}

	results := make([]LevelStats, 0, len(levels))
	for _, level := range levels {
		stats, err := d.runLevel(ctx, users, level, rec)
		if err != nil {
			return results, fmt.Errorf("level %d: %w", level, err)
		}
		results = append(results, stats)

		for _, op := range []model.Operation{model.OperationErase, model.OperationAccess, model.OperationConsent} {
			s := stats.Operations[op]
			d.logger.Info("Workload: level finished",
				"requests", level,
				"operation", op,
				"mean_latency", s.Mean(),
				"errors", s.Errors)
		}
	}

	return results, nil
}

func (d *Driver) runLevel(ctx context.Context, users []SeededUser, level int, rec *CSVRecorder) (LevelStats, error) {
	stats := LevelStats{Requests: level, Operations: make(map[model.Operation]OperationStats)}
	var mu sync.Mutex

	record := func(s Sample) error {
		mu.Lock()
		agg := stats.Operations[s.Operation]
		agg.Count++
		agg.Total += s.Latency
		if s.Err != nil {
			agg.Errors++
		}
		stats.Operations[s.Operation] = agg
		mu.Unlock()

		return rec.Record(s)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i := 0; i < level; i++ {
		if gctx.Err() != nil {
			break
		}
		user := d.pick(users)
		g.Go(func() error {
			return d.round(gctx, user, level, record)
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	return stats, rec.Flush()
}

func (d *Driver) round(ctx context.Context, user SeededUser, level int, record func(Sample) error) error {
	callCtx, cancel := d.callContext(ctx)
	latency, err := d.coordinator.EraseUser(callCtx, user.ID)
	cancel()
	if rErr := record(Sample{Operation: model.OperationErase, Requests: level, Latency: latency, Err: err}); rErr != nil {
		return rErr
	}

	callCtx, cancel = d.callContext(ctx)
	latency, _, err = d.coordinator.AccessUser(callCtx, user.ID)
	cancel()
	if rErr := record(Sample{Operation: model.OperationAccess, Requests: level, Latency: latency, Err: err}); rErr != nil {
		return rErr
	}

	callCtx, cancel = d.callContext(ctx)
	latency, err = d.coordinator.UpdateConsent(callCtx, user.ID, user.Consent)
	cancel()
	return record(Sample{Operation: model.OperationConsent, Requests: level, Latency: latency, Err: err})
}

func (d *Driver) pick(users []SeededUser) SeededUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	return users[d.rng.IntN(len(users))]
}

func (d *Driver) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}
