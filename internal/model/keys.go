package model

import (
	"context"

	"github.com/google/uuid"
)

// KeyVault manages the lifecycle of per-user key material.
type KeyVault interface {
	// Issue creates and stores a new key pair. Returns ErrAlreadyExists if a
	// live pair exists for the user.
	Issue(ctx context.Context, userID uuid.UUID) (KeyPair, error)
	// Destroy removes all key material for the user. Safe to repeat.
	Destroy(ctx context.Context, userID uuid.UUID) error
}

// KeyPair is a PEM encoded key pair bound to one user.
type KeyPair struct {
	UserID        uuid.UUID
	PublicKeyPEM  []byte
	PrivateKeyPEM []byte
	// PrivateKeyRef locates the private key inside the vault.
	PrivateKeyRef string
}
