package attendance

import "time"

// Status of a persisted attendance record.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent" // written by the absence sweep, never by check-in
)

// VerdictStatus is the outcome of one check-in attempt. Rejected attempts
// are reported to the caller but never persisted as records.
type VerdictStatus string

const (
	VerdictPresent  VerdictStatus = "present"
	VerdictLate     VerdictStatus = "late"
	VerdictRejected VerdictStatus = "rejected"
)

// Rejection reasons. These are expected outcomes, not errors.
const (
	ReasonWindowClosed    = "window closed"
	ReasonOutsideGeofence = "outside allowed location"
	ReasonFaceMismatch    = "face verification failed"
)

// Verdict is the final classification of one check-in attempt.
type Verdict struct {
	Status VerdictStatus
	Reason string // set only when Status is VerdictRejected
}

// Record is one immutable attendance entry. Only LateReason may change after
// creation, and only once, through the late-reason flow.
type Record struct {
	ID             string
	ClassID        string
	StudentID      string
	OccurrenceDate time.Time // the day the schedule fired, local date truncated
	ScheduledAt    time.Time
	CheckedInAt    *time.Time // nil for absence records
	Status         Status
	LateReason     *string
	CreatedAt      time.Time

	// DTO / Join
	StudentName *string
	ClassName   *string
}
