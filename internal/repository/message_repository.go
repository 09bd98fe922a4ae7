package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain"
	messagely_errors "messagely/pkg/errors"
)

type PostgresMessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, m.FromUsername, m.ToUsername, m.Body, m.SentAt).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return messagely_errors.ErrInvalidReference
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id int64) (domain.MessageDetail, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages m
		JOIN users f ON f.username = m.from_username
		JOIN users t ON t.username = m.to_username
		WHERE m.id = $1`

	var m domain.MessageDetail
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
		&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone,
		&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MessageDetail{}, messagely_errors.ErrNotFound
		}
		return domain.MessageDetail{}, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// MarkRead overwrites read_at unconditionally; a message already read just
// gets a later timestamp.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id int64, at time.Time) (time.Time, error) {
	query := `UPDATE messages SET read_at = $1 WHERE id = $2 RETURNING read_at`

	var readAt time.Time
	err := r.db.QueryRowContext(ctx, query, at, id).Scan(&readAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, messagely_errors.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return readAt, nil
}
