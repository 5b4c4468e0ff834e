package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
)

// Step names reported in OperationError.
const (
	StepIssueKeys     = "issue_keys"
	StepSealPayload   = "seal_payload"
	StepCreateRecord  = "create_record"
	StepDestroyKeys   = "destroy_keys"
	StepDeleteRecord  = "delete_record"
	StepGetRecord     = "get_record"
	StepSetConsent    = "set_consent"
	StepAppendLedger  = "append_ledger"
	StepValidateInput = "validate_input"
)

// Compliance coordinates the key vault, the mutable record store and the
// consent ledger. Every operation runs its steps in a fixed order and never
// compensates a committed step.
type Compliance struct {
	vault   model.KeyVault
	records model.RecordStore
	ledger  model.Ledger
	trusted *keymaterial.TrustedKeys
	locks   *userLocks
	logger  *logger.Logger
	now     func() time.Time
}

func NewCompliance(
	vault model.KeyVault,
	records model.RecordStore,
	ledger model.Ledger,
	trusted *keymaterial.TrustedKeys,
	logger *logger.Logger,
) *Compliance {
	return &Compliance{
		vault:   vault,
		records: records,
		ledger:  ledger,
		trusted: trusted,
		locks:   newUserLocks(),
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterUser issues keys, stores the record with the payload sealed to the
// user's public key and appends the initial consent to the ledger.
func (s *Compliance) RegisterUser(ctx context.Context, params model.RegisterParams) (time.Duration, uuid.UUID, error) {
	userID := params.UserID
	if userID == uuid.Nil {
		userID = uuid.New()
	}

	defer s.locks.lock(userID)()

	latency, err := s.timed(model.OperationRegister, func(t *tracker) error {
		if err := params.Consent.Validate(); err != nil {
			return t.fail(StepValidateInput, err)
		}

		keys, err := s.vault.Issue(ctx, userID)
		if err != nil {
			return t.fail(StepIssueKeys, err)
		}

		var sealed []byte
		if len(params.Payload) > 0 {
			sealed, err = keymaterial.Seal(keys.PublicKeyPEM, params.Payload)
			if err != nil {
				s.discardKeys(ctx, userID)
				return t.fail(StepSealPayload, err)
			}
		}

		err = s.records.Create(ctx, model.NewUser{
			ID:               userID,
			Name:             params.Name,
			Contact:          params.Contact,
			PublicKey:        keys.PublicKeyPEM,
			PrivateKeyRef:    keys.PrivateKeyRef,
			Consent:          params.Consent,
			EncryptedPayload: sealed,
		})
		if err != nil {
			s.discardKeys(ctx, userID)
			return t.fail(StepCreateRecord, err)
		}
		t.advance(model.StateStep1Done)

		_, err = s.ledger.Append(ctx, model.ConsentEntry{
			UserID:    userID,
			Operation: model.LedgerOperationGranted,
			Consent:   params.Consent,
		})
		if err != nil {
			s.logger.Warn("Compliance service: user registered without ledger entry",
				"user_id", userID,
				"error", err.Error())
			return t.fail(StepAppendLedger, err)
		}
		t.advance(model.StateStep2Done)

		return nil
	})

	return latency, userID, err
}

func (s *Compliance) discardKeys(ctx context.Context, userID uuid.UUID) {
	if err := s.vault.Destroy(ctx, userID); err != nil {
		s.logger.Error("Compliance service: failed to discard keys of unregistered user",
			"user_id", userID,
			"error", err.Error())
	}
}

// EraseUser crypto-shreds the user: key material goes first, then the
// mutable record. The ledger is not touched.
func (s *Compliance) EraseUser(ctx context.Context, userID uuid.UUID) (time.Duration, error) {
	defer s.locks.lock(userID)()

	return s.timed(model.OperationErase, func(t *tracker) error {
		if err := s.vault.Destroy(ctx, userID); err != nil {
			return t.fail(StepDestroyKeys, err)
		}
		t.advance(model.StateStep1Done)

		if err := s.records.Delete(ctx, userID); err != nil {
			s.logger.Warn("Compliance service: keys destroyed but record delete failed",
				"user_id", userID,
				"error", err.Error())
			return t.fail(StepDeleteRecord, err)
		}
		t.advance(model.StateStep2Done)

		s.logger.Info("Compliance service: user erased", "user_id", userID)
		return nil
	})
}

// AccessUser returns the current record of the user.
func (s *Compliance) AccessUser(ctx context.Context, userID uuid.UUID) (time.Duration, model.UserRecord, error) {
	defer s.locks.lock(userID)()

	var record model.UserRecord
	latency, err := s.timed(model.OperationAccess, func(t *tracker) error {
		var err error
		record, err = s.records.Get(ctx, userID)
		if err != nil {
			return t.fail(StepGetRecord, err)
		}
		t.advance(model.StateStep1Done)
		t.advance(model.StateSkipped)

		return nil
	})
	if err != nil {
		return latency, model.UserRecord{}, err
	}

	return latency, record, nil
}

// UpdateConsent writes the new consent to the record, then appends it to the
// ledger. A ledger failure leaves the record updated.
func (s *Compliance) UpdateConsent(ctx context.Context, userID uuid.UUID, consent model.Consent) (time.Duration, error) {
	defer s.locks.lock(userID)()

	return s.timed(model.OperationConsent, func(t *tracker) error {
		if err := consent.Validate(); err != nil {
			return t.fail(StepValidateInput, err)
		}

		if err := s.records.SetConsent(ctx, userID, consent); err != nil {
			return t.fail(StepSetConsent, err)
		}
		t.advance(model.StateStep1Done)

		receipt, err := s.ledger.Append(ctx, model.ConsentEntry{
			UserID:    userID,
			Operation: model.LedgerOperationUpdated,
			Consent:   consent,
		})
		if err != nil {
			s.logger.Warn("Compliance service: consent updated without ledger entry",
				"user_id", userID,
				"error", err.Error())
			return t.fail(StepAppendLedger, err)
		}
		t.advance(model.StateStep2Done)

		s.logger.Debug("Compliance service: consent recorded",
			"user_id", userID,
			"transaction_id", receipt.TransactionID)
		return nil
	})
}

// ConsentHistory returns the ledger events of the user, oldest first. It
// keeps working after the user has been erased.
func (s *Compliance) ConsentHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, error) {
	events, err := s.ledger.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consent history: %w", err)
	}

	return events, nil
}

// VerifyHistory checks every event of the user against the trusted signer
// set, its hash and its signature. It returns the events it read and the
// number verified before the first failure.
func (s *Compliance) VerifyHistory(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, int, error) {
	events, err := s.ConsentHistory(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	for i, event := range events {
		if !s.trusted.Contains(event.SignerKey) {
			return events, i, fmt.Errorf("%w: event %s signed by untrusted key", model.ErrTamperedEvent, event.ID)
		}
		payload, err := event.SignedPayload()
		if err != nil {
			return events, i, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
		}
		if !keymaterial.Verify(event.SignerKey, payload, event.PayloadHash, event.Signature) {
			return events, i, fmt.Errorf("%w: event %s", model.ErrTamperedEvent, event.ID)
		}
	}

	return events, len(events), nil
}
