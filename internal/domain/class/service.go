package class

import "context"

// ClassService defines business logic for class management.
type ClassService interface {
	// CreateClass creates a class for the authenticated teacher, generating
	// a unique join code.
	CreateClass(ctx context.Context, req CreateClassRequest) (ClassResponse, error)

	// GetClass retrieves a class the caller teaches or has joined.
	GetClass(ctx context.Context, id string) (ClassResponse, error)

	// UpdateSettings changes schedule, geofence, or face requirement;
	// teacher only.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (ClassResponse, error)

	// ListMine lists the caller's classes: owned for teachers, joined for
	// students.
	ListMine(ctx context.Context) ([]ClassResponse, error)

	// Join enrolls the authenticated student via a join code.
	Join(ctx context.Context, req JoinClassRequest) (ClassResponse, error)

	// ListMembers lists a class's students; teacher only.
	ListMembers(ctx context.Context, classID string) ([]MemberResponse, error)
}
