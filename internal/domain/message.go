package domain

import "time"

// Message is a single message between two users. ReadAt stays nil until the
// recipient marks it read; re-marking overwrites it with a later timestamp.
type Message struct {
	ID           int64      `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}

// MessageDetail is a message with both participants expanded to their
// public profiles.
type MessageDetail struct {
	ID       int64      `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at,omitempty"`
	FromUser Profile    `json:"from_user"`
	ToUser   Profile    `json:"to_user"`
}

// UserMessage is a message seen from one user's side, enriched with the
// counterpart's public profile.
type UserMessage struct {
	ID          int64      `json:"id"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	Counterpart Profile    `json:"counterpart"`
}

// CanAccess reports whether username may read this message.
func (m MessageDetail) CanAccess(username string) bool {
	return m.FromUser.Username == username || m.ToUser.Username == username
}

// CanMarkRead reports whether username may mark this message read.
// Only the recipient holds that capability.
func (m MessageDetail) CanMarkRead(username string) bool {
	return m.ToUser.Username == username
}
