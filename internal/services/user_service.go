package services

import (
	"context"

	"messagely/internal/domain"
	"messagely/internal/repository"
)

// UserService exposes directory queries over user records.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListAll(ctx context.Context) ([]domain.Profile, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// MessagesFrom returns every message username has sent, enriched with the
// recipient's profile. An unknown username is ErrNotFound; a known user with
// no messages gets an empty slice.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]domain.UserMessage, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.userRepo.MessagesFrom(ctx, username)
}

// MessagesTo mirrors MessagesFrom for received messages.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]domain.UserMessage, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.userRepo.MessagesTo(ctx, username)
}
