package auth

import "context"

// Usecase defines the interface for authentication business logic.
type Usecase interface {
	// Register creates a new account. No session is established; the client
	// logs in separately.
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)

	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)

	// Authenticate resolves a session token to the account's profile.
	Authenticate(ctx context.Context, tokenString string) (*ProfileResponse, error)
}
