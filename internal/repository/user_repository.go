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

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.JoinAt, u.LastLoginAt)
	if err != nil {
		if isUniqueViolation(err) {
			return messagely_errors.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query := `SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users WHERE username = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, messagely_errors.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT username, first_name, last_name, phone FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profiles, nil
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1 WHERE username = $2`

	res, err := r.db.ExecContext(ctx, query, at, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return messagely_errors.ErrNotFound
	}
	return nil
}

// MessagesFrom returns every message sent by username, each joined with the
// recipient's public profile. Zero messages yields an empty slice; callers
// decide whether the username itself exists.
func (r *PostgresUserRepository) MessagesFrom(ctx context.Context, username string) ([]domain.UserMessage, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
			u.username, u.first_name, u.last_name, u.phone
		FROM messages m
		JOIN users u ON u.username = m.to_username
		WHERE m.from_username = $1
		ORDER BY m.sent_at`

	return r.queryUserMessages(ctx, query, username)
}

// MessagesTo mirrors MessagesFrom for received messages, joined with the
// sender's public profile.
func (r *PostgresUserRepository) MessagesTo(ctx context.Context, username string) ([]domain.UserMessage, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
			u.username, u.first_name, u.last_name, u.phone
		FROM messages m
		JOIN users u ON u.username = m.from_username
		WHERE m.to_username = $1
		ORDER BY m.sent_at`

	return r.queryUserMessages(ctx, query, username)
}

func (r *PostgresUserRepository) queryUserMessages(ctx context.Context, query, username string) ([]domain.UserMessage, error) {
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []domain.UserMessage{}
	for rows.Next() {
		var m domain.UserMessage
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.Counterpart.Username, &m.Counterpart.FirstName, &m.Counterpart.LastName, &m.Counterpart.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return msgs, nil
}
