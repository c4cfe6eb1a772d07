package user

import (
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
)

type Role string

const (
	RoleTeacher Role = "teacher" // Creates classes, sees class attendance
	RoleStudent Role = "student" // Joins classes, checks in
)

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	DisplayName     string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string

	// FaceDescriptor is the enrolled embedding, nil until enrollment.
	// Enrollment is write-once; replacing it goes through the explicit
	// re-enroll operation.
	FaceDescriptor face.Descriptor

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTeacher checks if the user can create and manage classes.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsStudent checks if the user can join classes and check in.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// HasFaceEnrollment checks if the user has a stored descriptor.
func (u *User) HasFaceEnrollment() bool {
	return len(u.FaceDescriptor) > 0
}
