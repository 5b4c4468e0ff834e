package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/dtroode/sesn-compliance/internal/model"
)

// Sample is one measured operation.
type Sample struct {
	Operation model.Operation
	Requests  int
	Latency   time.Duration
	Err       error
}

// CSVRecorder writes samples as operation,requests,latency,error rows with
// latency in seconds. Safe for concurrent use.
type CSVRecorder struct {
	mu sync.Mutex
	w  *csv.Writer
}

func NewCSVRecorder(w io.Writer) (*CSVRecorder, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"operation", "requests", "latency", "error"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	return &CSVRecorder{w: cw}, nil
}

func (r *CSVRecorder) Record(s Sample) error {
	errText := ""
	if s.Err != nil {
		errText = s.Err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.w.Write([]string{
		string(s.Operation),
		strconv.Itoa(s.Requests),
		strconv.FormatFloat(s.Latency.Seconds(), 'f', 6, 64),
		errText,
	})
	if err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (r *CSVRecorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.w.Flush()
	return r.w.Error()
}
