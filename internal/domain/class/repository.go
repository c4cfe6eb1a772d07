package class

import "context"

// ClassRepository defines data access methods for classes and memberships.
type ClassRepository interface {
	// Create inserts a new class and returns it with generated fields set.
	Create(ctx context.Context, c Class) (Class, error)

	// GetByID retrieves a class by ID.
	GetByID(ctx context.Context, id string) (Class, error)

	// GetByCode retrieves a class by its join code.
	GetByCode(ctx context.Context, code string) (Class, error)

	// CodeExists reports whether a join code is already taken.
	CodeExists(ctx context.Context, code string) (bool, error)

	// Update persists mutable class fields (name, schedule, geofence,
	// face requirement).
	Update(ctx context.Context, c Class) error

	// ListByTeacher lists classes owned by a teacher.
	ListByTeacher(ctx context.Context, teacherID string) ([]Class, error)

	// ListByStudent lists classes a student has joined.
	ListByStudent(ctx context.Context, studentID string) ([]Class, error)

	// ListAll lists every class; used by the absence sweep.
	ListAll(ctx context.Context) ([]Class, error)

	// AddMember enrolls a student into a class.
	AddMember(ctx context.Context, classID, studentID string) error

	// IsMember reports whether a student belongs to a class.
	IsMember(ctx context.Context, classID, studentID string) (bool, error)

	// ListMembers lists a class's enrolled students.
	ListMembers(ctx context.Context, classID string) ([]Membership, error)
}
