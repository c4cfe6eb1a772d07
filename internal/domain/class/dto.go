package class

import (
	"encoding/json"

	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

// ========================================
// CLASS DTOs
// ========================================

type CreateClassRequest struct {
	Name        string              `json:"name"`
	Schedule    schedule.Descriptor `json:"schedule"`
	Geofence    *Geofence           `json:"location"`
	RequireFace bool                `json:"require_face"`
}

func (r *CreateClassRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "class name is required",
		})
	}

	if err := r.Schedule.Validate(); err != nil {
		errs = appendValidation(errs, err)
	}

	if r.Geofence != nil {
		if err := r.Geofence.Validate(); err != nil {
			errs = appendValidation(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSettingsRequest changes a class's schedule, geofence, or face
// verification requirement. Nil fields are left untouched; clearing the
// geofence is expressed with remove_location.
type UpdateSettingsRequest struct {
	ID             string               `json:"-"`
	Name           *string              `json:"name"`
	Schedule       *schedule.Descriptor `json:"schedule"`
	Geofence       *Geofence            `json:"location"`
	RemoveGeofence bool                 `json:"remove_location"`
	RequireFace    *bool                `json:"require_face"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "class name must not be blank",
		})
	}

	if r.Schedule != nil {
		if err := r.Schedule.Validate(); err != nil {
			errs = appendValidation(errs, err)
		}
	}

	if r.Geofence != nil && r.RemoveGeofence {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "cannot set and remove the location in the same request",
		})
	}

	if r.Geofence != nil {
		if err := r.Geofence.Validate(); err != nil {
			errs = appendValidation(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JoinClassRequest struct {
	Code string `json:"code"`
}

func (r *JoinClassRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidClassCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "join code must be three letters followed by three digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClassResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	TeacherID   string          `json:"teacher_id"`
	TeacherName string          `json:"teacher_name"`
	Schedule    json.RawMessage `json:"schedule"`
	Geofence    *Geofence       `json:"location,omitempty"`
	RequireFace bool            `json:"require_face"`
	MemberCount *int            `json:"member_count,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type MemberResponse struct {
	StudentID   string `json:"student_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	JoinedAt    string `json:"joined_at"`
}

func appendValidation(errs validator.ValidationErrors, err error) validator.ValidationErrors {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return append(errs, verrs...)
	}
	return append(errs, validator.ValidationError{Field: "request", Message: err.Error()})
}
