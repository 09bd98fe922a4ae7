package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/domain"
	messagely_errors "messagely/pkg/errors"
)

func seedUsers(t *testing.T, store *fakeStore, usernames ...string) {
	t.Helper()
	for _, name := range usernames {
		err := store.Create(context.Background(), &domain.User{
			Username: name, PasswordHash: "hash", FirstName: name,
			LastName: "Test", Phone: "555-0000",
			JoinAt: time.Now(), LastLoginAt: time.Now(),
		})
		require.NoError(t, err)
	}
}

func TestSendAndGet(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice", "bob")
	svc := NewMessageService(messageRepo{store})

	sent, err := svc.Send(context.Background(), "alice", "bob", "hello")
	require.NoError(t, err)
	assert.NotZero(t, sent.ID)
	assert.Nil(t, sent.ReadAt)
	assert.False(t, sent.SentAt.IsZero())

	got, err := svc.Get(context.Background(), sent.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.FromUser.Username)
	assert.Equal(t, "bob", got.ToUser.Username)
	assert.Equal(t, "hello", got.Body)

	// Recipient can read it too.
	_, err = svc.Get(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
}

func TestSend_UnknownRecipient(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice")
	svc := NewMessageService(messageRepo{store})

	_, err := svc.Send(context.Background(), "alice", "ghost", "hello?")
	assert.ErrorIs(t, err, messagely_errors.ErrInvalidReference)
}

func TestSend_InvalidInput(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice", "bob")
	svc := NewMessageService(messageRepo{store})

	_, err := svc.Send(context.Background(), "alice", "bob", "")
	assert.ErrorIs(t, err, messagely_errors.ErrInvalidInput)

	_, err = svc.Send(context.Background(), "alice", "", "hi")
	assert.ErrorIs(t, err, messagely_errors.ErrInvalidInput)
}

func TestGet_OutsiderForbidden(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice", "bob", "carol")
	svc := NewMessageService(messageRepo{store})

	sent, err := svc.Send(context.Background(), "alice", "bob", "secret")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), sent.ID, "carol")
	assert.ErrorIs(t, err, messagely_errors.ErrForbidden)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewMessageService(messageRepo{newFakeStore()})

	_, err := svc.Get(context.Background(), 42, "alice")
	assert.ErrorIs(t, err, messagely_errors.ErrNotFound)
}

func TestMarkRead_RecipientOnly(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice", "bob")
	svc := NewMessageService(messageRepo{store})

	sent, err := svc.Send(context.Background(), "alice", "bob", "hello")
	require.NoError(t, err)

	// The sender may not mark their own message read.
	_, err = svc.MarkRead(context.Background(), sent.ID, "alice")
	assert.ErrorIs(t, err, messagely_errors.ErrForbidden)

	receipt, err := svc.MarkRead(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, sent.ID, receipt.ID)
	assert.False(t, receipt.ReadAt.IsZero())
	assert.True(t, !receipt.ReadAt.Before(sent.SentAt), "read_at should be >= sent_at")
}

func TestMarkRead_RepeatAdvancesTimestamp(t *testing.T) {
	store := newFakeStore()
	seedUsers(t, store, "alice", "bob")
	svc := NewMessageService(messageRepo{store})

	sent, err := svc.Send(context.Background(), "alice", "bob", "hello")
	require.NoError(t, err)

	first, err := svc.MarkRead(context.Background(), sent.ID, "bob")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	// No already-read guard: a second call simply overwrites read_at.
	second, err := svc.MarkRead(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
	assert.True(t, second.ReadAt.After(first.ReadAt))
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := NewMessageService(messageRepo{newFakeStore()})

	_, err := svc.MarkRead(context.Background(), 42, "bob")
	assert.ErrorIs(t, err, messagely_errors.ErrNotFound)
}
