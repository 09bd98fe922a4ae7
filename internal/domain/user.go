package domain

import "time"

// User is a registered account. PasswordHash never leaves the repository
// and service layers; DTOs expose Profile views only.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	JoinAt       time.Time `json:"join_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Profile is the public slice of a user record.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (u User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
