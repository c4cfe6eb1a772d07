package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in for this session")
	ErrCheckInInFlight  = errors.New("a check-in for this session is already being processed")

	// Late-reason errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrNotLate          = errors.New("a reason can only be added to a late record")
	ErrReasonAlreadySet = errors.New("a reason has already been provided for this record")

	// General errors
	ErrUnauthorized = errors.New("unauthorized to access this attendance record")
)
