package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository. The unique index on
// (class_id, student_id, occurrence_date) makes double check-ins a conflict.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (id, class_id, student_id, occurrence_date,
										scheduled_at, checked_in_at, status, late_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.ClassID,
		record.StudentID,
		record.OccurrenceDate,
		record.ScheduledAt,
		record.CheckedInAt,
		record.Status,
		record.LateReason,
	).Scan(&record.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.class_id, r.student_id, r.occurrence_date, r.scheduled_at,
			   r.checked_in_at, r.status, r.late_reason, r.created_at,
			   u.display_name, c.name
		FROM attendance_records r
		JOIN users u ON u.id = r.student_id
		JOIN classes c ON c.id = r.class_id
		WHERE r.id = $1
		LIMIT 1
	`

	var record attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.ClassID, &record.StudentID, &record.OccurrenceDate, &record.ScheduledAt,
		&record.CheckedInAt, &record.Status, &record.LateReason, &record.CreatedAt,
		&record.StudentName, &record.ClassName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

// HasRecord implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasRecord(ctx context.Context, classID, studentID string, occurrenceDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM attendance_records
			WHERE class_id = $1 AND student_id = $2 AND occurrence_date = $3
		)`,
		classID, studentID, occurrenceDate,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance record: %w", err)
	}

	return exists, nil
}

// SetLateReason implements attendance.AttendanceRepository. The WHERE clause
// enforces the write-once rule at the store level.
func (r *attendanceRepositoryImpl) SetLateReason(ctx context.Context, id, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET late_reason = $1
		WHERE id = $2 AND status = 'late' AND late_reason IS NULL
	`

	tag, err := q.Exec(ctx, query, reason, id)
	if err != nil {
		return fmt.Errorf("failed to set late reason: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrReasonAlreadySet
	}

	return nil
}

func (r *attendanceRepositoryImpl) listFiltered(ctx context.Context, base string, args []interface{}, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{base}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		conditions = append(conditions, fmt.Sprintf("r.class_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("r.occurrence_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("r.occurrence_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendance_records r ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT r.id, r.class_id, r.student_id, r.occurrence_date, r.scheduled_at,
			   r.checked_in_at, r.status, r.late_reason, r.created_at,
			   u.display_name, c.name
		FROM attendance_records r
		JOIN users u ON u.id = r.student_id
		JOIN classes c ON c.id = r.class_id
		%s
		ORDER BY r.occurrence_date DESC, r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var record attendance.Record
		err := rows.Scan(
			&record.ID, &record.ClassID, &record.StudentID, &record.OccurrenceDate, &record.ScheduledAt,
			&record.CheckedInAt, &record.Status, &record.LateReason, &record.CreatedAt,
			&record.StudentName, &record.ClassName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// ListByStudent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByStudent(ctx context.Context, studentID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	return r.listFiltered(ctx, "r.student_id = $1", []interface{}{studentID}, filter)
}

// ListByClass implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByClass(ctx context.Context, classID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	return r.listFiltered(ctx, "r.class_id = $1", []interface{}{classID}, filter)
}

// BulkCreateAbsences implements attendance.AttendanceRepository. ON CONFLICT
// DO NOTHING keeps existing present and late records untouched.
func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO attendance_records (id, class_id, student_id, occurrence_date,
											scheduled_at, checked_in_at, status)
			VALUES ($1, $2, $3, $4, $5, NULL, $6)
			ON CONFLICT (class_id, student_id, occurrence_date) DO NOTHING
		`

		for _, record := range records {
			id := record.ID
			if id == "" {
				id = uuid.NewString()
			}
			_, err := tx.Exec(ctx, query,
				id, record.ClassID, record.StudentID,
				record.OccurrenceDate, record.ScheduledAt, record.Status,
			)
			if err != nil {
				return fmt.Errorf("failed to insert absence record: %w", err)
			}
		}

		return nil
	})
}
