package attendance

import "context"

// AttendanceService defines business logic for check-ins and history.
type AttendanceService interface {
	// CheckIn evaluates one check-in attempt and persists the record when
	// the verdict is present or late. Rejected attempts are returned, not
	// stored.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// WindowStatus reports the current attendance-window state for a
	// class. Polled by the check-in UI (recommended every 60 seconds).
	WindowStatus(ctx context.Context, classID string) (WindowResponse, error)

	// SubmitLateReason attaches a free-text reason to a late record,
	// once.
	SubmitLateReason(ctx context.Context, req LateReasonRequest) (RecordResponse, error)

	// MyHistory lists the authenticated student's records.
	MyHistory(ctx context.Context, filter HistoryFilter) (ListRecordsResponse, error)

	// ClassHistory lists a class's records; class teacher only.
	ClassHistory(ctx context.Context, classID string, filter HistoryFilter) (ListRecordsResponse, error)
}
