package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements profile CRUD on top of the repository port.
type Service struct {
	users    Repository
	notifier Notifier

	logger *zap.Logger
}

func NewService(users Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		notifier: notifier,

		logger: logger,
	}
}

// Create validates and stores a new user, then fires a best-effort
// welcome notification.
func (s *Service) Create(ctx context.Context, email, name string) (*User, error) {
	existing, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	user, err := NewUser(email, name)
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	if notifyErr := s.notifier.WelcomeUser(ctx, saved); notifyErr != nil {
		s.logger.Warn("failed to send welcome notification",
			zap.String("email", saved.Email),
			zap.Error(notifyErr))
	}

	return saved, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", ErrValidation)
	}

	return s.users.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// Delete removes a user and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	return user, nil
}
