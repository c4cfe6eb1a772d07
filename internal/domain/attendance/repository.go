package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The store enforces at-most-one record per (class, student, occurrence)
// with a unique index; Create surfaces that as ErrAlreadyCheckedIn.
type AttendanceRepository interface {
	// Create inserts a new attendance record.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// HasRecord reports whether a record exists for the occurrence.
	HasRecord(ctx context.Context, classID, studentID string, occurrenceDate time.Time) (bool, error)

	// SetLateReason stores the one-time late reason.
	SetLateReason(ctx context.Context, id, reason string) error

	// ListByStudent retrieves a student's records with filters and
	// pagination.
	ListByStudent(ctx context.Context, studentID string, filter HistoryFilter) ([]Record, int64, error)

	// ListByClass retrieves a class's records with filters and pagination.
	ListByClass(ctx context.Context, classID string, filter HistoryFilter) ([]Record, int64, error)

	// BulkCreateAbsences inserts absence records, skipping conflicts with
	// existing records for the same occurrence.
	BulkCreateAbsences(ctx context.Context, records []Record) error
}
