package attendance

import (
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Position is a reported GPS fix. It is optional on check-in; classes with a
// geofence reject attempts that omit it.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CheckInRequest struct {
	ClassID string `json:"class_id"`

	// Position is required when the class has a geofence.
	Position *Position `json:"position"`

	// FaceSample is required when the class requires face verification.
	FaceSample face.Descriptor `json:"face_sample"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClassID) {
		errs = append(errs, validator.ValidationError{
			Field:   "class_id",
			Message: "class_id is required",
		})
	}

	if r.Position != nil {
		if !validator.IsValidLatitude(r.Position.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "position.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Position.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "position.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	// A sample is validated for dimensionality only when present; whether
	// one is required depends on the class and is checked by the service.
	if r.FaceSample != nil {
		if err := r.FaceSample.Validate(); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "face_sample",
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckInResponse struct {
	Status   string          `json:"status"`
	Reason   string          `json:"reason,omitempty"`
	Record   *RecordResponse `json:"record,omitempty"`
	Window   *WindowResponse `json:"window,omitempty"`
	Recorded bool            `json:"recorded"`
}

type RecordResponse struct {
	ID             string  `json:"id"`
	ClassID        string  `json:"class_id"`
	ClassName      *string `json:"class_name,omitempty"`
	StudentID      string  `json:"student_id"`
	StudentName    *string `json:"student_name,omitempty"`
	OccurrenceDate string  `json:"occurrence_date"`
	ScheduledAt    string  `json:"scheduled_at"`
	CheckedInAt    *string `json:"checked_in_at,omitempty"`
	Status         string  `json:"status"`
	LateReason     *string `json:"late_reason,omitempty"`
}

// WindowResponse describes the current attendance window for polling UIs.
type WindowResponse struct {
	State          string `json:"state"`
	FiresToday     bool   `json:"fires_today"`
	ScheduledAt    string `json:"scheduled_at,omitempty"`
	EarliestOnTime string `json:"earliest_on_time,omitempty"`
	LatestOnTime   string `json:"latest_on_time,omitempty"`
	LatestLate     string `json:"latest_late,omitempty"`
}

type LateReasonRequest struct {
	RecordID string `json:"-"`
	Reason   string `json:"reason"`
}

func (r *LateReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	ClassID   *string
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}
	if f.Status != nil {
		valid := []string{string(StatusPresent), string(StatusLate), string(StatusAbsent)}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be present, late, or absent",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
