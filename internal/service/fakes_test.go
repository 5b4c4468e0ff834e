package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/model"
)

type memVault struct {
	mu   sync.Mutex
	keys map[uuid.UUID]model.KeyPair
}

func newMemVault() *memVault {
	return &memVault{keys: make(map[uuid.UUID]model.KeyPair)}
}

func (v *memVault) Issue(_ context.Context, userID uuid.UUID) (model.KeyPair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.keys[userID]; ok {
		return model.KeyPair{}, model.ErrAlreadyExists
	}
	priv, pub, err := keymaterial.GenerateRSA()
	if err != nil {
		return model.KeyPair{}, err
	}
	pair := model.KeyPair{
		UserID:        userID,
		PublicKeyPEM:  pub,
		PrivateKeyPEM: priv,
		PrivateKeyRef: "keys/users/" + userID.String() + "/private.pem",
	}
	v.keys[userID] = pair
	return pair, nil
}

func (v *memVault) Destroy(_ context.Context, userID uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.keys, userID)
	return nil
}

func (v *memVault) has(userID uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.keys[userID]
	return ok
}

type memRecords struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.NewUser
}

func newMemRecords() *memRecords {
	return &memRecords{users: make(map[uuid.UUID]model.NewUser)}
}

func (r *memRecords) Create(_ context.Context, user model.NewUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return model.ErrAlreadyExists
	}
	user.Consent = user.Consent.Clone()
	r.users[user.ID] = user
	return nil
}

func (r *memRecords) Get(_ context.Context, userID uuid.UUID) (model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return model.UserRecord{}, model.ErrNotFound
	}
	return model.UserRecord{
		ID:               u.ID,
		Name:             u.Name,
		Contact:          u.Contact,
		PublicKey:        u.PublicKey,
		Consent:          u.Consent.Clone(),
		EncryptedPayload: u.EncryptedPayload,
	}, nil
}

func (r *memRecords) SetConsent(_ context.Context, userID uuid.UUID, consent model.Consent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return model.ErrNotFound
	}
	u.Consent = consent.Clone()
	r.users[userID] = u
	return nil
}

func (r *memRecords) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

type memLedger struct {
	mu      sync.Mutex
	signer  *keymaterial.Signer
	events  []model.ConsentEvent
	failErr error
}

func newMemLedger() *memLedger {
	signer, err := keymaterial.NewSigner("")
	if err != nil {
		panic(err)
	}
	return &memLedger{signer: signer}
}

func (l *memLedger) Append(_ context.Context, entry model.ConsentEntry) (model.LedgerReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failErr != nil {
		return model.LedgerReceipt{}, l.failErr
	}

	event := model.ConsentEvent{
		ID:        uuid.New(),
		UserID:    entry.UserID,
		Operation: entry.Operation,
		Consent:   entry.Consent.Clone(),
		CreatedAt: time.Now().UTC(),
		SignerKey: l.signer.PublicKey(),
	}
	payload, err := event.SignedPayload()
	if err != nil {
		return model.LedgerReceipt{}, err
	}
	event.PayloadHash, event.Signature = l.signer.Sign(payload)
	l.events = append(l.events, event)

	return model.LedgerReceipt{TransactionID: event.ID, CommittedAt: event.CreatedAt}, nil
}

func (l *memLedger) History(_ context.Context, userID uuid.UUID) ([]model.ConsentEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []model.ConsentEvent
	for _, e := range l.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}
