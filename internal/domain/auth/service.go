package auth

import "context"

// AuthService defines business logic for account and session management.
type AuthService interface {
	// Register creates a new account and returns a logged-in session.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	// Login authenticates with email and password.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle finds or creates the account matching a verified
	// Google identity and returns a logged-in session.
	LoginWithGoogle(ctx context.Context, email, googleID, displayName string) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
