package service

import (
	"errors"
	"time"

	"github.com/dtroode/sesn-compliance/internal/model"
)

// tracker walks one invocation through its state machine.
type tracker struct {
	op    model.Operation
	state model.OperationState
	start time.Time
	now   func() time.Time
}

func (t *tracker) advance(state model.OperationState) {
	t.state = state
}

// fail stops the invocation at step and wraps err.
func (t *tracker) fail(step string, err error) error {
	reached := t.state
	t.state = model.StateFailed
	return &model.OperationError{
		Op:      t.op,
		Step:    step,
		State:   reached,
		Latency: t.now().Sub(t.start),
		Err:     err,
	}
}

// timed runs fn as op and reports the wall-clock latency including failures.
func (s *Compliance) timed(op model.Operation, fn func(t *tracker) error) (time.Duration, error) {
	t := &tracker{op: op, state: model.StateStarted, start: s.now(), now: s.now}

	err := fn(t)
	latency := s.now().Sub(t.start)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
		step := "unknown"
		var opErr *model.OperationError
		if errors.As(err, &opErr) {
			opErr.Latency = latency
			step = opErr.Step
		}
		operationFailures.WithLabelValues(string(op), step).Inc()
	} else {
		t.advance(model.StateCompleted)
	}
	operationDuration.WithLabelValues(string(op), outcome).Observe(latency.Seconds())

	s.logger.Debug("Compliance service: operation finished",
		"operation", op,
		"state", t.state,
		"latency", latency)

	return latency, err
}
