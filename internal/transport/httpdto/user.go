package httpdto

import "messagely/internal/domain"

// UsersResponse is returned when listing users
type UsersResponse struct {
	Users []domain.Profile `json:"users"`
}

// UserResponse wraps a single full profile
type UserResponse struct {
	User UserDTO `json:"user"`
}

// UserDTO is a full user profile in API responses
type UserDTO struct {
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	JoinAt      string `json:"join_at"`
	LastLoginAt string `json:"last_login_at"`
}

// UserMessagesResponse is returned for a user's sent or received messages
type UserMessagesResponse struct {
	Messages []domain.UserMessage `json:"messages"`
}
