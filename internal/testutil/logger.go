package testutil

import (
	"io"

	"github.com/dtroode/sesn-compliance/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
