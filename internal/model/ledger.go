package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Ledger is an append-only store of consent events. There is
// no way to update or remove an entry through it.
type Ledger interface {
	Append(ctx context.Context, entry ConsentEntry) (LedgerReceipt, error)
	History(ctx context.Context, userID uuid.UUID) ([]ConsentEvent, error)
}

// LedgerOperation labels why an event was appended.
type LedgerOperation string

const (
	// LedgerOperationGranted is appended when a user is onboarded.
	LedgerOperationGranted LedgerOperation = "CONSENT_GRANTED"
	// LedgerOperationUpdated is appended on consent updates.
	LedgerOperationUpdated LedgerOperation = "CONSENT_UPDATED"
)

// ConsentEntry is the payload handed to Append.
type ConsentEntry struct {
	UserID    uuid.UUID
	Operation LedgerOperation
	Consent   Consent
}

// ConsentEvent is a committed, signed ledger entry.
type ConsentEvent struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Operation   LedgerOperation `json:"operation"`
	Consent     Consent         `json:"consent"`
	CreatedAt   time.Time       `json:"created_at"`
	PayloadHash []byte          `json:"payload_hash"`
	Signature   []byte          `json:"signature"`
	SignerKey   []byte          `json:"signer_key"`
}

// LedgerReceipt acknowledges a committed append.
type LedgerReceipt struct {
	TransactionID uuid.UUID
	CommittedAt   time.Time
}

// SignedPayload is the canonical byte form covered by the event signature.
// Map keys are marshalled in sorted order, so equal events encode equally.
func (e ConsentEvent) SignedPayload() ([]byte, error) {
	return json.Marshal(struct {
		ID        uuid.UUID       `json:"id"`
		UserID    uuid.UUID       `json:"user_id"`
		Operation LedgerOperation `json:"operation"`
		Consent   Consent         `json:"consent"`
		CreatedAt string          `json:"created_at"`
	}{
		ID:        e.ID,
		UserID:    e.UserID,
		Operation: e.Operation,
		Consent:   e.Consent,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}
