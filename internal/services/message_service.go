package services

import (
	"context"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
	messagely_errors "messagely/pkg/errors"
)

// MessageService owns message creation, retrieval and read receipts, and
// enforces who may act on a message.
type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

type ReadReceipt struct {
	ID     int64     `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// Send creates a message from the caller to toUsername. An unknown recipient
// surfaces as ErrInvalidReference from the store's foreign key.
func (s *MessageService) Send(ctx context.Context, fromUsername, toUsername, body string) (domain.Message, error) {
	if toUsername == "" || body == "" {
		return domain.Message{}, messagely_errors.ErrInvalidInput
	}

	m := &domain.Message{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now(),
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return domain.Message{}, err
	}
	return *m, nil
}

// Get loads a message for asUsername. Only the sender or the recipient may
// see it; anyone else gets ErrForbidden.
func (s *MessageService) Get(ctx context.Context, id int64, asUsername string) (domain.MessageDetail, error) {
	m, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return domain.MessageDetail{}, err
	}
	if !m.CanAccess(asUsername) {
		return domain.MessageDetail{}, messagely_errors.ErrForbidden
	}
	return m, nil
}

// MarkRead stamps read_at on a message for asUsername. Only the recipient
// may mark it; re-marking just advances the timestamp.
func (s *MessageService) MarkRead(ctx context.Context, id int64, asUsername string) (ReadReceipt, error) {
	m, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return ReadReceipt{}, err
	}
	if !m.CanMarkRead(asUsername) {
		return ReadReceipt{}, messagely_errors.ErrForbidden
	}

	readAt, err := s.messageRepo.MarkRead(ctx, id, time.Now())
	if err != nil {
		return ReadReceipt{}, err
	}
	return ReadReceipt{ID: id, ReadAt: readAt}, nil
}
