package user

import "context"

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with generated fields set.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByOAuth retrieves a user by OAuth provider and provider ID.
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)

	// UpdateProfile updates the mutable profile fields.
	UpdateProfile(ctx context.Context, u User) error

	// SetFaceDescriptor stores or replaces the enrollment descriptor.
	SetFaceDescriptor(ctx context.Context, userID string, descriptor []float32) error
}
