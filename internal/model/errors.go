package model

import "errors"

var (
	// ErrNotFound is returned when the target user is absent in a store.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on key issuance or onboarding collisions.
	ErrAlreadyExists = errors.New("already exists")
	// ErrLedgerUnavailable is returned when a ledger commit fails.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrStoreUnavailable is returned on mutable store transport failures.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrVaultUnavailable is returned on key vault transport failures.
	ErrVaultUnavailable = errors.New("key vault unavailable")
	// ErrInvalidConsent is returned for consent maps with empty categories.
	ErrInvalidConsent = errors.New("invalid consent")
	// ErrTamperedEvent is returned when a ledger event fails verification.
	ErrTamperedEvent = errors.New("ledger event failed verification")
)
