package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/storage"
)

// badgerRepository implements Repository over the Badger document store.
type badgerRepository struct {
	db   *badger.DB
	docs *storage.Repository[*userModel]
}

func NewRepository(db *badger.DB) Repository {
	return &badgerRepository{
		db:   db,
		docs: storage.NewRepository(func() *userModel { return new(userModel) }),
	}
}

// Save upserts a user. A zero ID marks a new document and gets one
// assigned here.
func (r *badgerRepository) Save(_ context.Context, user *User) (*User, error) {
	model := newUserModel(user)
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	} else {
		model.touch()
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.docs.Write(txn, model)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return model.toDomain(), nil
}

func (r *badgerRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	var model *userModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.docs.Read(txn, prefixByID+id.String())
		if err == nil {
			model = found
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return model.toDomain(), nil
}

func (r *badgerRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	var model *userModel

	email = strings.ToLower(email)
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.docs.ReadByIndex(txn, prefixByEmail+email)
		if err == nil {
			model = found
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

func (r *badgerRepository) List(_ context.Context) ([]User, error) {
	var result []User

	err := r.db.View(func(txn *badger.Txn) error {
		models, err := r.docs.List(txn, prefixByID)
		if err != nil {
			return err
		}

		for _, model := range models {
			result = append(result, *model.toDomain())
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return result, nil
}

func (r *badgerRepository) Delete(_ context.Context, id uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.docs.Read(txn, prefixByID+id.String())
		if err != nil {
			return err
		}

		return r.docs.Delete(txn, model)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
