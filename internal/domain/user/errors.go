package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrTeacherAccessRequired = errors.New("teacher role required")
	ErrStudentAccessRequired = errors.New("student role required")
	ErrFaceAlreadyEnrolled   = errors.New("face already enrolled, use re-enroll to replace it")
	ErrFaceNotEnrolled       = errors.New("no face enrollment to replace")
)
