package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordStore is the mutable store holding the current view of a user.
type RecordStore interface {
	Create(ctx context.Context, user NewUser) error
	Get(ctx context.Context, userID uuid.UUID) (UserRecord, error)
	SetConsent(ctx context.Context, userID uuid.UUID, consent Consent) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// NewUser is the write shape of a user record. PrivateKeyRef points at the
// vault object and is never returned by reads.
type NewUser struct {
	ID               uuid.UUID
	Name             string
	Contact          string
	PublicKey        []byte
	PrivateKeyRef    string
	Consent          Consent
	EncryptedPayload []byte
}

// UserRecord is what an access request returns.
type UserRecord struct {
	ID               uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Contact          string    `json:"contact"`
	PublicKey        []byte    `json:"public_key"`
	Consent          Consent   `json:"consent"`
	EncryptedPayload []byte    `json:"encrypted_payload,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RegisterParams contains parameters to onboard a user.
type RegisterParams struct {
	UserID  uuid.UUID
	Name    string
	Contact string
	Consent Consent
	Payload []byte
}
