// Package users resolves Telegram identities into persistent user records.
package users

import (
	"context"
	"errors"

	"github.com/usmm07/foodcourt/internal/domain/user"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Service manages user records.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id int64) (user.User, error) {
	return s.store.GetUser(ctx, id)
}

// GetByTelegramID returns one user by telegram id.
func (s *Service) GetByTelegramID(ctx context.Context, telegramID string) (user.User, error) {
	return s.store.GetUserByTelegramID(ctx, telegramID)
}

// Resolve returns the user for the given telegram identity, creating it on
// first contact. A concurrent first contact loses the insert race and falls
// back to reading the winner's row, so both callers observe the same user.
func (s *Service) Resolve(ctx context.Context, in schema.InsertUser) (user.User, error) {
	if err := in.Validate(); err != nil {
		return user.User{}, err
	}

	existing, err := s.store.GetUserByTelegramID(ctx, in.TelegramID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.User{}, err
	}

	created, err := s.store.CreateUser(ctx, in)
	if err == nil {
		s.log.Infof("user %d registered for telegram id %s", created.ID, created.TelegramID)
		return created, nil
	}
	if errors.Is(err, storage.ErrConflict) {
		return s.store.GetUserByTelegramID(ctx, in.TelegramID)
	}
	return user.User{}, err
}
