package model

import (
	"fmt"
	"time"
)

// Operation names a coordinator entry point.
type Operation string

const (
	OperationRegister Operation = "REGISTER"
	OperationErase    Operation = "RTBF"
	OperationAccess   Operation = "DAR"
	OperationConsent  Operation = "CONSENT"
)

// OperationState is the progress of a single operation invocation.
type OperationState string

const (
	StateStarted   OperationState = "STARTED"
	StateStep1Done OperationState = "STEP1_DONE"
	StateStep2Done OperationState = "STEP2_DONE"
	StateSkipped   OperationState = "SKIPPED"
	StateCompleted OperationState = "COMPLETED"
	StateFailed    OperationState = "FAILED"
)

// OperationError reports a failed invocation. State is the last state reached
// before the failure; effects committed up to that point are not undone.
type OperationError struct {
	Op      Operation
	Step    string
	State   OperationState
	Latency time.Duration
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed at step %q after %s (reached %s): %v", e.Op, e.Step, e.Latency, e.State, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
