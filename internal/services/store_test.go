package services

import (
	"context"
	"sort"
	"time"

	"messagely/internal/domain"
	messagely_errors "messagely/pkg/errors"
)

// fakeStore is an in-memory stand-in for both repositories, mimicking the
// constraint behavior of the Postgres schema: unique usernames and foreign
// keys from messages to users.
type fakeStore struct {
	users    map[string]domain.User
	messages map[int64]*domain.Message
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]domain.User{},
		messages: map[int64]*domain.Message{},
		nextID:   1,
	}
}

func (f *fakeStore) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.users[u.Username]; ok {
		return messagely_errors.ErrAlreadyExists
	}
	f.users[u.Username] = *u
	return nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return domain.User{}, messagely_errors.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	for _, u := range f.users {
		profiles = append(profiles, u.Profile())
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Username < profiles[j].Username })
	return profiles, nil
}

func (f *fakeStore) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	u, ok := f.users[username]
	if !ok {
		return messagely_errors.ErrNotFound
	}
	u.LastLoginAt = at
	f.users[username] = u
	return nil
}

func (f *fakeStore) MessagesFrom(ctx context.Context, username string) ([]domain.UserMessage, error) {
	return f.collect(username, true)
}

func (f *fakeStore) MessagesTo(ctx context.Context, username string) ([]domain.UserMessage, error) {
	return f.collect(username, false)
}

func (f *fakeStore) collect(username string, sent bool) ([]domain.UserMessage, error) {
	out := []domain.UserMessage{}
	for _, m := range f.messages {
		var counterpart string
		if sent && m.FromUsername == username {
			counterpart = m.ToUsername
		} else if !sent && m.ToUsername == username {
			counterpart = m.FromUsername
		} else {
			continue
		}
		out = append(out, domain.UserMessage{
			ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
			Counterpart: f.users[counterpart].Profile(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, m *domain.Message) error {
	if _, ok := f.users[m.FromUsername]; !ok {
		return messagely_errors.ErrInvalidReference
	}
	if _, ok := f.users[m.ToUsername]; !ok {
		return messagely_errors.ErrInvalidReference
	}
	m.ID = f.nextID
	f.nextID++
	stored := *m
	f.messages[m.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (domain.MessageDetail, error) {
	m, ok := f.messages[id]
	if !ok {
		return domain.MessageDetail{}, messagely_errors.ErrNotFound
	}
	return domain.MessageDetail{
		ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
		FromUser: f.users[m.FromUsername].Profile(),
		ToUser:   f.users[m.ToUsername].Profile(),
	}, nil
}

func (f *fakeStore) MarkRead(ctx context.Context, id int64, at time.Time) (time.Time, error) {
	m, ok := f.messages[id]
	if !ok {
		return time.Time{}, messagely_errors.ErrNotFound
	}
	m.ReadAt = &at
	return at, nil
}

// messageRepo adapts fakeStore to repository.MessageRepository, whose Create
// collides with the user repository's.
type messageRepo struct{ *fakeStore }

func (r messageRepo) Create(ctx context.Context, m *domain.Message) error {
	return r.CreateMessage(ctx, m)
}
