package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"messagely/internal/domain"
	messagely_errors "messagely/pkg/errors"
)

func newMessageRepoWithMock(t *testing.T) (MessageRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewMessageRepository(db), mock, db
}

func TestMessageCreate_Success(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs("alice", "bob", "hello", now).
		WillReturnRows(rows)

	m := &domain.Message{FromUsername: "alice", ToUsername: "bob", Body: "hello", SentAt: now}
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.ID != 7 {
		t.Fatalf("want id 7, got %d", m.ID)
	}
}

func TestMessageCreate_UnknownRecipient(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO messages`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	m := &domain.Message{FromUsername: "alice", ToUsername: "ghost", Body: "hi", SentAt: time.Now()}
	err := repo.Create(context.Background(), m)
	if !errors.Is(err, messagely_errors.ErrInvalidReference) {
		t.Fatalf("want ErrInvalidReference, got %v", err)
	}
}

func TestMessageGetByID_Found(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "body", "sent_at", "read_at",
		"f_username", "f_first", "f_last", "f_phone",
		"t_username", "t_first", "t_last", "t_phone",
	}).AddRow(int64(3), "hello", now, nil,
		"alice", "Alice", "Anders", "555-0001",
		"bob", "Bob", "Baker", "555-0002")
	mock.ExpectQuery(`SELECT .* FROM messages m JOIN users f .* JOIN users t`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	m, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if m.FromUser.Username != "alice" || m.ToUser.Username != "bob" {
		t.Fatalf("unexpected participants: %+v", m)
	}
	if m.ReadAt != nil {
		t.Fatalf("new message should be unread")
	}
}

func TestMessageGetByID_NotFound(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM messages m JOIN users f .* JOIN users t`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, messagely_errors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMarkRead_ReturnsTimestamp(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	at := time.Now()
	rows := sqlmock.NewRows([]string{"read_at"}).AddRow(at)
	mock.ExpectQuery(`UPDATE messages SET read_at`).
		WithArgs(at, int64(3)).
		WillReturnRows(rows)

	readAt, err := repo.MarkRead(context.Background(), 3, at)
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if !readAt.Equal(at) {
		t.Fatalf("want read_at %v, got %v", at, readAt)
	}
}

func TestMarkRead_NotFound(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE messages SET read_at`).
		WithArgs(sqlmock.AnyArg(), int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.MarkRead(context.Background(), 99, time.Now())
	if !errors.Is(err, messagely_errors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
