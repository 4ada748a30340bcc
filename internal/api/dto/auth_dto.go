package dto

import "time"

// AuthRequest payload for register and login.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IdentityResponse describes the caller behind a bearer token.
type IdentityResponse struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	Landing string `json:"landing"`
}
