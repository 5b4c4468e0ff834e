package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/model"
)

var _ model.Ledger = (*LedgerRepository)(nil)

// LedgerRepository appends signed consent events. The table rejects UPDATE
// and DELETE with a trigger.
type LedgerRepository struct {
	db     dbtx
	signer *keymaterial.Signer
	now    func() time.Time
}

func NewLedgerRepository(db *Connection, signer *keymaterial.Signer) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		signer: signer,
		now:    time.Now,
	}
}

func (r *LedgerRepository) Append(ctx context.Context, entry model.ConsentEntry) (model.LedgerReceipt, error) {
	event := model.ConsentEvent{
		ID:        uuid.New(),
		UserID:    entry.UserID,
		Operation: entry.Operation,
		Consent:   entry.Consent,
		// postgres keeps microseconds; sign what will be read back
		CreatedAt: r.now().UTC().Truncate(time.Microsecond),
		SignerKey: r.signer.PublicKey(),
	}

	payload, err := event.SignedPayload()
	if err != nil {
		return model.LedgerReceipt{}, fmt.Errorf("failed to encode event: %w", err)
	}
	event.PayloadHash, event.Signature = r.signer.Sign(payload)

	consent, err := json.Marshal(event.Consent)
	if err != nil {
		return model.LedgerReceipt{}, fmt.Errorf("failed to marshal consent: %w", err)
	}

	query := `INSERT INTO consent_events (id, user_id, operation, consent, payload_hash, signature, signer_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		event.ID, event.UserID, string(event.Operation), consent,
		event.PayloadHash, event.Signature, event.SignerKey, event.CreatedAt,
	)
	if err != nil {
		return model.LedgerReceipt{}, fmt.Errorf("%w: failed to commit consent event: %w", model.ErrLedgerUnavailable, err)
	}

	return model.LedgerReceipt{TransactionID: event.ID, CommittedAt: event.CreatedAt}, nil
}

func (r *LedgerRepository) History(ctx context.Context, userID uuid.UUID) ([]model.ConsentEvent, error) {
	query := `SELECT id, user_id, operation, consent, payload_hash, signature, signer_key, created_at
			  FROM consent_events WHERE user_id = $1
			  ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read consent events: %w", model.ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	var events []model.ConsentEvent
	for rows.Next() {
		var (
			event     model.ConsentEvent
			operation string
			consent   []byte
		)
		err := rows.Scan(
			&event.ID, &event.UserID, &operation, &consent,
			&event.PayloadHash, &event.Signature, &event.SignerKey, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consent event: %w", err)
		}
		if err := json.Unmarshal(consent, &event.Consent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal consent: %w", err)
		}
		event.Operation = model.LedgerOperation(operation)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read consent events: %w", model.ErrLedgerUnavailable, err)
	}

	return events, nil
}
