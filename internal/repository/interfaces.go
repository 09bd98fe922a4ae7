package repository

import (
	"context"
	"time"

	"messagely/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
	MessagesFrom(ctx context.Context, username string) ([]domain.UserMessage, error)
	MessagesTo(ctx context.Context, username string) ([]domain.UserMessage, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int64) (domain.MessageDetail, error)
	MarkRead(ctx context.Context, id int64, at time.Time) (time.Time, error)
}
