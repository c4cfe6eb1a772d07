package class

import (
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

// Geofence is the circular region a class may restrict check-ins to.
// A nil geofence on a class means no location restriction.
type Geofence struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius"`
}

func (g Geofence) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(g.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(g.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if g.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.radius",
			Message: "radius must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Class struct {
	ID          string
	Name        string
	Code        string
	TeacherID   string
	TeacherName string
	Schedule    schedule.Descriptor
	Geofence    *Geofence
	RequireFace bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	MemberCount *int
}

// Membership links a student to a class.
type Membership struct {
	ClassID   string
	StudentID string
	JoinedAt  time.Time

	// DTO / Join
	StudentName  *string
	StudentEmail *string
}
