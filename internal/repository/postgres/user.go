package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/sesn-compliance/internal/model"
)

const uniqueViolation = "23505"

var _ model.RecordStore = (*UserRepository)(nil)

// UserRepository is the mutable record store. private_key_ref is written on
// create and never read back.
type UserRepository struct {
	db dbtx
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.NewUser) error {
	consent, err := json.Marshal(user.Consent)
	if err != nil {
		return fmt.Errorf("failed to marshal consent: %w", err)
	}

	query := `INSERT INTO users (user_id, name, contact, public_key, private_key_ref, consent, encrypted_payload)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(ctx, query,
		user.ID, user.Name, user.Contact, user.PublicKey, user.PrivateKeyRef, consent, user.EncryptedPayload,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: user %s", model.ErrAlreadyExists, user.ID)
		}
		return fmt.Errorf("%w: failed to create user: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *UserRepository) Get(ctx context.Context, userID uuid.UUID) (model.UserRecord, error) {
	query := `SELECT user_id, name, contact, public_key, consent, encrypted_payload, created_at, updated_at
			  FROM users WHERE user_id = $1`

	var (
		user    model.UserRecord
		consent []byte
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Name, &user.Contact, &user.PublicKey, &consent,
		&user.EncryptedPayload, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserRecord{}, model.ErrNotFound
		}
		return model.UserRecord{}, fmt.Errorf("%w: failed to get user: %w", model.ErrStoreUnavailable, err)
	}

	if err := json.Unmarshal(consent, &user.Consent); err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to unmarshal consent: %w", err)
	}

	return user, nil
}

func (r *UserRepository) SetConsent(ctx context.Context, userID uuid.UUID, consent model.Consent) error {
	raw, err := json.Marshal(consent)
	if err != nil {
		return fmt.Errorf("failed to marshal consent: %w", err)
	}

	const query = `UPDATE users SET consent = $2, updated_at = NOW() WHERE user_id = $1`
	cmd, err := r.db.Exec(ctx, query, userID, raw)
	if err != nil {
		return fmt.Errorf("%w: failed to update consent: %w", model.ErrStoreUnavailable, err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the user row. Deleting an absent user is not an error.
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM users WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%w: failed to delete user: %w", model.ErrStoreUnavailable, err)
	}
	return nil
}
