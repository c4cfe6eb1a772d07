package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/metrics"
)

// AbsenceJobs marks students absent for schedule firings they missed. It
// looks one day back so a firing's late grace has long since passed.
type AbsenceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	classRepo      class.ClassRepository
	policy         schedule.Policy
	metrics        *metrics.Metrics
	loc            *time.Location
}

func NewAbsenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	classRepo class.ClassRepository,
	policy schedule.Policy,
	m *metrics.Metrics,
	loc *time.Location,
) *AbsenceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AbsenceJobs{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		policy:         policy,
		metrics:        m,
		loc:            loc,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_students", 1*time.Hour, j.MarkAbsentStudents)
}

func (j *AbsenceJobs) MarkAbsentStudents(ctx context.Context) error {
	now := time.Now().In(j.loc)

	// Only run at local midnight (00:00-00:59)
	if now.Hour() != 0 {
		return nil
	}

	return j.sweep(ctx, now)
}

func (j *AbsenceJobs) sweep(ctx context.Context, now time.Time) error {
	slog.Info("Cron: Starting mark absent students job")

	yesterday := now.AddDate(0, 0, -1)

	classes, err := j.classRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}

	totalAbsent := 0

	for _, c := range classes {
		scheduledAt, fired := c.Schedule.OccurrenceOn(yesterday)
		if !fired {
			continue
		}

		// OccurrenceOn resolves a one-time schedule on any reference day;
		// only a firing dated yesterday counts.
		if !sameLocalDate(scheduledAt.In(j.loc), yesterday) {
			continue
		}

		// The firing's late grace must have fully elapsed.
		if !now.After(j.policy.WindowFor(scheduledAt).LatestLate) {
			continue
		}

		occurrenceDate := time.Date(
			scheduledAt.Year(), scheduledAt.Month(), scheduledAt.Day(),
			0, 0, 0, 0, j.loc,
		)

		members, err := j.classRepo.ListMembers(ctx, c.ID)
		if err != nil {
			slog.Error("Cron: Failed to list class members", "class_id", c.ID, "error", err)
			continue
		}

		var absences []attendance.Record
		for _, m := range members {
			hasRecord, err := j.attendanceRepo.HasRecord(ctx, c.ID, m.StudentID, occurrenceDate)
			if err != nil {
				slog.Error("Cron: Failed to check attendance record",
					"class_id", c.ID, "student_id", m.StudentID, "error", err)
				continue
			}
			if hasRecord {
				continue
			}

			absences = append(absences, attendance.Record{
				ClassID:        c.ID,
				StudentID:      m.StudentID,
				OccurrenceDate: occurrenceDate,
				ScheduledAt:    scheduledAt,
				Status:         attendance.StatusAbsent,
			})
		}

		if len(absences) == 0 {
			continue
		}

		if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
			slog.Error("Cron: Failed to bulk create absences", "class_id", c.ID, "error", err)
			continue
		}

		totalAbsent += len(absences)
		if j.metrics != nil {
			j.metrics.AbsencesRecorded.Add(float64(len(absences)))
		}
	}

	slog.Info("Cron: Marked absent students", "count", totalAbsent)
	return nil
}

func sameLocalDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
