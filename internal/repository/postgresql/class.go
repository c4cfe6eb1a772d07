package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/database"
)

type classRepositoryImpl struct {
	db *database.DB
}

func NewClassRepository(db *database.DB) class.ClassRepository {
	return &classRepositoryImpl{db: db}
}

const classColumns = `
	c.id, c.name, c.code, c.teacher_id, u.display_name,
	c.schedule, c.geofence_latitude, c.geofence_longitude, c.geofence_radius_m,
	c.require_face, c.created_at, c.updated_at
`

func scanClass(row pgx.Row) (class.Class, error) {
	var c class.Class
	var scheduleJSON []byte
	var fenceLat, fenceLng, fenceRadius *float64

	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.TeacherName,
		&scheduleJSON, &fenceLat, &fenceLng, &fenceRadius,
		&c.RequireFace, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return class.Class{}, err
	}

	if err := json.Unmarshal(scheduleJSON, &c.Schedule); err != nil {
		return class.Class{}, fmt.Errorf("failed to decode schedule: %w", err)
	}

	if fenceLat != nil && fenceLng != nil && fenceRadius != nil {
		c.Geofence = &class.Geofence{
			Latitude:     *fenceLat,
			Longitude:    *fenceLng,
			RadiusMeters: *fenceRadius,
		}
	}

	return c, nil
}

func geofenceColumns(g *class.Geofence) (lat, lng, radius *float64) {
	if g == nil {
		return nil, nil, nil
	}
	return &g.Latitude, &g.Longitude, &g.RadiusMeters
}

// Create implements class.ClassRepository.
func (r *classRepositoryImpl) Create(ctx context.Context, c class.Class) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	scheduleJSON, err := json.Marshal(c.Schedule)
	if err != nil {
		return class.Class{}, fmt.Errorf("failed to encode schedule: %w", err)
	}
	fenceLat, fenceLng, fenceRadius := geofenceColumns(c.Geofence)

	query := `
		INSERT INTO classes (id, name, code, teacher_id, schedule,
							 geofence_latitude, geofence_longitude, geofence_radius_m, require_face)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		c.ID, c.Name, c.Code, c.TeacherID, scheduleJSON,
		fenceLat, fenceLng, fenceRadius, c.RequireFace,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return class.Class{}, fmt.Errorf("failed to create class: %w", err)
	}

	return c, nil
}

// GetByID implements class.ClassRepository.
func (r *classRepositoryImpl) GetByID(ctx context.Context, id string) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classColumns + `
		FROM classes c
		JOIN users u ON u.id = c.teacher_id
		WHERE c.id = $1
		LIMIT 1
	`

	c, err := scanClass(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return class.Class{}, class.ErrClassNotFound
		}
		return class.Class{}, fmt.Errorf("failed to get class: %w", err)
	}

	return c, nil
}

// GetByCode implements class.ClassRepository.
func (r *classRepositoryImpl) GetByCode(ctx context.Context, code string) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classColumns + `
		FROM classes c
		JOIN users u ON u.id = c.teacher_id
		WHERE c.code = $1
		LIMIT 1
	`

	c, err := scanClass(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return class.Class{}, class.ErrCodeNotFound
		}
		return class.Class{}, fmt.Errorf("failed to get class by code: %w", err)
	}

	return c, nil
}

// CodeExists implements class.ClassRepository.
func (r *classRepositoryImpl) CodeExists(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM classes WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check class code: %w", err)
	}

	return exists, nil
}

// Update implements class.ClassRepository.
func (r *classRepositoryImpl) Update(ctx context.Context, c class.Class) error {
	q := GetQuerier(ctx, r.db)

	scheduleJSON, err := json.Marshal(c.Schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	fenceLat, fenceLng, fenceRadius := geofenceColumns(c.Geofence)

	query := `
		UPDATE classes
		SET name = $1, schedule = $2,
			geofence_latitude = $3, geofence_longitude = $4, geofence_radius_m = $5,
			require_face = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		c.Name, scheduleJSON, fenceLat, fenceLng, fenceRadius, c.RequireFace, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrClassNotFound
	}

	return nil
}

func (r *classRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classColumns + `,
			   (SELECT COUNT(*) FROM class_members m WHERE m.class_id = c.id) AS member_count
		FROM classes c
		JOIN users u ON u.id = c.teacher_id
		` + where + `
		ORDER BY c.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []class.Class
	for rows.Next() {
		var c class.Class
		var scheduleJSON []byte
		var fenceLat, fenceLng, fenceRadius *float64
		var memberCount int

		err := rows.Scan(
			&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.TeacherName,
			&scheduleJSON, &fenceLat, &fenceLng, &fenceRadius,
			&c.RequireFace, &c.CreatedAt, &c.UpdatedAt,
			&memberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}

		if err := json.Unmarshal(scheduleJSON, &c.Schedule); err != nil {
			return nil, fmt.Errorf("failed to decode schedule: %w", err)
		}
		if fenceLat != nil && fenceLng != nil && fenceRadius != nil {
			c.Geofence = &class.Geofence{
				Latitude:     *fenceLat,
				Longitude:    *fenceLng,
				RadiusMeters: *fenceRadius,
			}
		}
		c.MemberCount = &memberCount

		classes = append(classes, c)
	}

	return classes, rows.Err()
}

// ListByTeacher implements class.ClassRepository.
func (r *classRepositoryImpl) ListByTeacher(ctx context.Context, teacherID string) ([]class.Class, error) {
	return r.list(ctx, "WHERE c.teacher_id = $1", teacherID)
}

// ListByStudent implements class.ClassRepository.
func (r *classRepositoryImpl) ListByStudent(ctx context.Context, studentID string) ([]class.Class, error) {
	return r.list(ctx, "WHERE c.id IN (SELECT class_id FROM class_members WHERE student_id = $1)", studentID)
}

// ListAll implements class.ClassRepository.
func (r *classRepositoryImpl) ListAll(ctx context.Context) ([]class.Class, error) {
	return r.list(ctx, "")
}

// AddMember implements class.ClassRepository.
func (r *classRepositoryImpl) AddMember(ctx context.Context, classID, studentID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO class_members (class_id, student_id)
		VALUES ($1, $2)
	`

	_, err := q.Exec(ctx, query, classID, studentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return class.ErrAlreadyMember
			case "23503":
				return class.ErrClassNotFound
			}
		}
		return fmt.Errorf("failed to add class member: %w", err)
	}

	return nil
}

// IsMember implements class.ClassRepository.
func (r *classRepositoryImpl) IsMember(ctx context.Context, classID, studentID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM class_members WHERE class_id = $1 AND student_id = $2)`,
		classID, studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check class membership: %w", err)
	}

	return exists, nil
}

// ListMembers implements class.ClassRepository.
func (r *classRepositoryImpl) ListMembers(ctx context.Context, classID string) ([]class.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.class_id, m.student_id, m.joined_at, u.display_name, u.email
		FROM class_members m
		JOIN users u ON u.id = m.student_id
		WHERE m.class_id = $1
		ORDER BY u.display_name
	`

	rows, err := q.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list class members: %w", err)
	}
	defer rows.Close()

	var members []class.Membership
	for rows.Next() {
		var m class.Membership
		if err := rows.Scan(&m.ClassID, &m.StudentID, &m.JoinedAt, &m.StudentName, &m.StudentEmail); err != nil {
			return nil, fmt.Errorf("failed to scan class member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
