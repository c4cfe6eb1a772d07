package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
)

type stubClassRepo struct {
	class.ClassRepository
	classes []class.Class
	members map[string][]class.Membership
}

func (s *stubClassRepo) ListAll(ctx context.Context) ([]class.Class, error) {
	return s.classes, nil
}

func (s *stubClassRepo) ListMembers(ctx context.Context, classID string) ([]class.Membership, error) {
	return s.members[classID], nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	existing map[string]bool
	written  []attendance.Record
}

func occurrenceKey(classID, studentID string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", classID, studentID, date.Format("2006-01-02"))
}

func (s *stubAttendanceRepo) HasRecord(ctx context.Context, classID, studentID string, occurrenceDate time.Time) (bool, error) {
	return s.existing[occurrenceKey(classID, studentID, occurrenceDate)], nil
}

func (s *stubAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Record) error {
	s.written = append(s.written, records...)
	return nil
}

var sweepZone = time.FixedZone("WIB", 7*3600)

// Tuesday 2026-03-03 00:10 local; the sweep looks at Monday 2026-03-02.
func sweepNow() time.Time {
	return time.Date(2026, time.March, 3, 0, 10, 0, 0, sweepZone)
}

func newSweepJobs(classes []class.Class, members map[string][]class.Membership, existing map[string]bool) (*AbsenceJobs, *stubAttendanceRepo) {
	if existing == nil {
		existing = map[string]bool{}
	}
	attendanceRepo := &stubAttendanceRepo{existing: existing}
	classRepo := &stubClassRepo{classes: classes, members: members}
	jobs := NewAbsenceJobs(attendanceRepo, classRepo, schedule.DefaultPolicy(), nil, sweepZone)
	return jobs, attendanceRepo
}

func TestSweep_OneTimeFutureClassWritesNothing(t *testing.T) {
	classes := []class.Class{{
		ID: "class-1",
		Schedule: schedule.Descriptor{
			Type:    schedule.TypeOneTime,
			OneTime: sweepNow().AddDate(0, 0, 30),
		},
	}}
	members := map[string][]class.Membership{
		"class-1": {{ClassID: "class-1", StudentID: "student-1"}},
	}

	jobs, attendanceRepo := newSweepJobs(classes, members, nil)
	err := jobs.sweep(context.Background(), sweepNow())

	require.NoError(t, err)
	assert.Empty(t, attendanceRepo.written)
}

func TestSweep_OneTimeYesterdayMarksMissingStudents(t *testing.T) {
	scheduledAt := time.Date(2026, time.March, 2, 8, 0, 0, 0, sweepZone)
	occurrenceDate := time.Date(2026, time.March, 2, 0, 0, 0, 0, sweepZone)

	classes := []class.Class{{
		ID:       "class-1",
		Schedule: schedule.Descriptor{Type: schedule.TypeOneTime, OneTime: scheduledAt},
	}}
	members := map[string][]class.Membership{
		"class-1": {
			{ClassID: "class-1", StudentID: "attended"},
			{ClassID: "class-1", StudentID: "missing"},
		},
	}
	existing := map[string]bool{
		occurrenceKey("class-1", "attended", occurrenceDate): true,
	}

	jobs, attendanceRepo := newSweepJobs(classes, members, existing)
	err := jobs.sweep(context.Background(), sweepNow())

	require.NoError(t, err)
	require.Len(t, attendanceRepo.written, 1)

	record := attendanceRepo.written[0]
	assert.Equal(t, "class-1", record.ClassID)
	assert.Equal(t, "missing", record.StudentID)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
	assert.True(t, record.OccurrenceDate.Equal(occurrenceDate))
	assert.True(t, record.ScheduledAt.Equal(scheduledAt))
	assert.Nil(t, record.CheckedInAt)
}

func TestSweep_WeeklyYesterdayMarksMissingStudents(t *testing.T) {
	eight, err := schedule.ParseTimeOfDay("08:00")
	require.NoError(t, err)

	classes := []class.Class{{
		ID: "class-1",
		Schedule: schedule.Descriptor{
			Type:   schedule.TypeWeekly,
			Weekly: []schedule.WeeklyEntry{{Day: time.Monday, Time: eight}},
		},
	}}
	members := map[string][]class.Membership{
		"class-1": {{ClassID: "class-1", StudentID: "missing"}},
	}

	jobs, attendanceRepo := newSweepJobs(classes, members, nil)
	err = jobs.sweep(context.Background(), sweepNow())

	require.NoError(t, err)
	require.Len(t, attendanceRepo.written, 1)
	assert.True(t, attendanceRepo.written[0].OccurrenceDate.Equal(
		time.Date(2026, time.March, 2, 0, 0, 0, 0, sweepZone)))
}

func TestSweep_WeeklyWrongDayWritesNothing(t *testing.T) {
	eight, err := schedule.ParseTimeOfDay("08:00")
	require.NoError(t, err)

	// Yesterday is a Monday; a Thursday-only class must not be swept.
	classes := []class.Class{{
		ID: "class-1",
		Schedule: schedule.Descriptor{
			Type:   schedule.TypeWeekly,
			Weekly: []schedule.WeeklyEntry{{Day: time.Thursday, Time: eight}},
		},
	}}
	members := map[string][]class.Membership{
		"class-1": {{ClassID: "class-1", StudentID: "student-1"}},
	}

	jobs, attendanceRepo := newSweepJobs(classes, members, nil)
	err = jobs.sweep(context.Background(), sweepNow())

	require.NoError(t, err)
	assert.Empty(t, attendanceRepo.written)
}

func TestSweep_LateGraceStillRunningWritesNothing(t *testing.T) {
	// Scheduled yesterday 23:50; late grace runs until 00:15, after the
	// sweep instant of 00:10.
	scheduledAt := time.Date(2026, time.March, 2, 23, 50, 0, 0, sweepZone)

	classes := []class.Class{{
		ID:       "class-1",
		Schedule: schedule.Descriptor{Type: schedule.TypeOneTime, OneTime: scheduledAt},
	}}
	members := map[string][]class.Membership{
		"class-1": {{ClassID: "class-1", StudentID: "student-1"}},
	}

	jobs, attendanceRepo := newSweepJobs(classes, members, nil)
	err := jobs.sweep(context.Background(), sweepNow())

	require.NoError(t, err)
	assert.Empty(t, attendanceRepo.written)
}
