package user

import "context"

// UserService defines business logic for profiles and face enrollment.
type UserService interface {
	// Profile returns the authenticated user's profile.
	Profile(ctx context.Context) (ProfileResponse, error)

	// UpdateProfile changes the mutable profile fields.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)

	// EnrollFace stores the first enrollment descriptor. Enrollment is
	// write-once; a second call fails with ErrFaceAlreadyEnrolled.
	EnrollFace(ctx context.Context, req EnrollFaceRequest) (ProfileResponse, error)

	// ReEnrollFace replaces an existing enrollment descriptor.
	ReEnrollFace(ctx context.Context, req EnrollFaceRequest) (ProfileResponse, error)
}
