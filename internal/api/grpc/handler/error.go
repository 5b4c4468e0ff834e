package handler

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sesn-compliance/internal/model"
)

func handleError(err error) error {
	var (
		code = codes.Internal
		msg  = "internal server error"
	)

	switch {
	case errors.Is(err, model.ErrNotFound):
		code, msg = codes.NotFound, "user not found"
	case errors.Is(err, model.ErrAlreadyExists):
		code, msg = codes.AlreadyExists, "user already exists"
	case errors.Is(err, model.ErrInvalidConsent):
		code, msg = codes.InvalidArgument, model.ErrInvalidConsent.Error()
	case errors.Is(err, model.ErrTamperedEvent):
		code, msg = codes.DataLoss, "ledger event failed verification"
	case errors.Is(err, model.ErrStoreUnavailable):
		code, msg = codes.Unavailable, model.ErrStoreUnavailable.Error()
	case errors.Is(err, model.ErrLedgerUnavailable):
		code, msg = codes.Unavailable, model.ErrLedgerUnavailable.Error()
	case errors.Is(err, model.ErrVaultUnavailable):
		code, msg = codes.Unavailable, model.ErrVaultUnavailable.Error()
	}

	var opErr *model.OperationError
	if errors.As(err, &opErr) {
		msg = fmt.Sprintf("%s at step %s", msg, opErr.Step)
	}

	return status.Error(code, msg)
}
