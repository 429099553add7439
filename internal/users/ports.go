package users

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists user documents.
type Repository interface {
	Save(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier delivers out-of-band notifications to users. Delivery
// failures must never fail the triggering operation.
type Notifier interface {
	WelcomeUser(ctx context.Context, user *User) error
}
