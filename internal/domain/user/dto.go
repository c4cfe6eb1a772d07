package user

import (
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

// ========================================
// PROFILE DTOs
// ========================================

type ProfileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
	FaceEnrolled bool   `json:"face_enrolled"`
	CreatedAt    string `json:"created_at"`
}

// NewProfileResponse builds the public view of an account.
func NewProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         string(u.Role),
		FaceEnrolled: u.HasFaceEnrollment(),
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EnrollFaceRequest carries the descriptor produced by the client's capture
// pipeline. The same shape serves first enrollment and re-enrollment.
type EnrollFaceRequest struct {
	Descriptor face.Descriptor `json:"descriptor"`
}

func (r *EnrollFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.Descriptor.Validate(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
