package domain

import "time"

// User is an account able to log in. IsAdmin is never set by the API.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
