package auth

import "time"

// RegisterRequest represents the request payload for creating an account.
type RegisterRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"omitempty,max=100"`
}

// RegisterResponse represents the public projection returned after registration.
// The password hash is never part of any response payload.
type RegisterResponse struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// LoginRequest represents the request payload for authenticating.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginResponse carries the issued session token and the public user projection.
type LoginResponse struct {
	Token string
	User  SessionUser
}

// SessionUser is the user projection returned alongside a fresh token.
type SessionUser struct {
	ID    string
	Email string
	Name  string
}

// ProfileResponse represents the profile projection returned to the
// authenticated caller.
type ProfileResponse struct {
	ID    string
	Email string
	Name  string
	Bio   string
}
