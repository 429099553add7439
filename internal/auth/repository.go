package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/storage"
)

// badgerCredentialRepository implements CredentialRepository over the
// Badger document store.
type badgerCredentialRepository struct {
	db   *badger.DB
	docs *storage.Repository[*credentialModel]
}

func NewCredentialRepository(db *badger.DB) CredentialRepository {
	return &badgerCredentialRepository{
		db:   db,
		docs: storage.NewRepository(func() *credentialModel { return new(credentialModel) }),
	}
}

// Save upserts a credential document. One credential per user ID; the
// email index keeps lookups case-insensitive because emails are stored
// lower-cased.
func (r *badgerCredentialRepository) Save(_ context.Context, credential *Credential) error {
	model := newCredentialModel(credential)

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.docs.Write(txn, model)
	})
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

func (r *badgerCredentialRepository) GetByEmail(_ context.Context, email string) (*Credential, error) {
	var model *credentialModel

	email = strings.ToLower(email)
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.docs.ReadByIndex(txn, credentialPrefixByEmail+email)
		if err == nil {
			model = found
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential by email: %w", err)
	}

	return model.toDomain(), nil
}

func (r *badgerCredentialRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*Credential, error) {
	var model *credentialModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.docs.Read(txn, credentialPrefixByUser+userID.String())
		if err == nil {
			model = found
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential by user ID: %w", err)
	}

	return model.toDomain(), nil
}

// UpdateLastLogin rewrites only the login timestamp inside one
// transaction.
func (r *badgerCredentialRepository) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.docs.Read(txn, credentialPrefixByUser+userID.String())
		if err != nil {
			return err
		}

		model.LastLoginAt = &at

		return r.docs.Write(txn, model)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// Deactivate flips the active flag off. Idempotent.
func (r *badgerCredentialRepository) Deactivate(_ context.Context, userID uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.docs.Read(txn, credentialPrefixByUser+userID.String())
		if err != nil {
			return err
		}

		model.IsActive = false

		return r.docs.Write(txn, model)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate credential: %w", err)
	}

	return nil
}

// badgerRefreshTokenRepository implements RefreshTokenRepository over
// the Badger document store.
type badgerRefreshTokenRepository struct {
	db   *badger.DB
	docs *storage.Repository[*refreshTokenModel]
}

func NewRefreshTokenRepository(db *badger.DB) RefreshTokenRepository {
	return &badgerRefreshTokenRepository{
		db:   db,
		docs: storage.NewRepository(func() *refreshTokenModel { return new(refreshTokenModel) }),
	}
}

// Save stores a refresh-token record, assigning an ID when absent.
func (r *badgerRefreshTokenRepository) Save(_ context.Context, token *RefreshToken) (*RefreshToken, error) {
	model := newRefreshTokenModel(token)
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.docs.Write(txn, model)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return model.toDomain(), nil
}

func (r *badgerRefreshTokenRepository) GetByToken(_ context.Context, token string) (*RefreshToken, error) {
	var model *refreshTokenModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.docs.Read(txn, refreshTokenPrefixByToken+token)
		if err == nil {
			model = found
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: no such token", ErrInvalidRefreshToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return model.toDomain(), nil
}

// DeleteByUserID removes every refresh token owned by the user. Missing
// tokens are not an error, which keeps logout idempotent.
func (r *badgerRefreshTokenRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		models, err := r.docs.ListByIndex(txn, refreshTokenPrefixByUser+userID.String()+":")
		if err != nil {
			return err
		}

		for _, model := range models {
			if delErr := r.docs.Delete(txn, model); delErr != nil {
				return delErr
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}

	return nil
}

// DeleteExpired sweeps tokens past their expiry and reports how many
// went away.
func (r *badgerRefreshTokenRepository) DeleteExpired(_ context.Context) (int, error) {
	deleted := 0

	err := r.db.Update(func(txn *badger.Txn) error {
		models, err := r.docs.List(txn, refreshTokenPrefixByToken)
		if err != nil {
			return err
		}

		for _, model := range models {
			if model.toDomain().IsExpired() {
				if delErr := r.docs.Delete(txn, model); delErr != nil {
					return delErr
				}
				deleted++
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	return deleted, nil
}
