package response

import (
	"errors"
	"net/http"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/auth"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotFound(w, "Google sign-in is not available")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrTeacherAccessRequired),
		errors.Is(err, user.ErrStudentAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrFaceAlreadyEnrolled):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrFaceNotEnrolled), errors.Is(err, face.ErrNotEnrolled):
		BadRequest(w, "No face enrollment on record", nil)
	case errors.Is(err, face.ErrDimensionMismatch):
		BadRequest(w, err.Error(), nil)

	// Class domain errors
	case errors.Is(err, class.ErrClassNotFound):
		NotFound(w, "Class not found")
	case errors.Is(err, class.ErrCodeNotFound):
		NotFound(w, "No class with that join code")
	case errors.Is(err, class.ErrAlreadyMember):
		Conflict(w, "Already a member of this class")
	case errors.Is(err, class.ErrNotMember):
		Forbidden(w, "Not a member of this class")
	case errors.Is(err, class.ErrNotClassTeacher):
		Forbidden(w, "Only the class teacher can do this")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckInInFlight):
		TooManyRequests(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotLate), errors.Is(err, attendance.ErrReasonAlreadySet):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
