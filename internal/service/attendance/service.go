package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/cache"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/metrics"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/sse"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

const checkInLockTTL = 10 * time.Second

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	class.ClassRepository
	user.UserRepository

	engine  *Engine
	cache   *cache.Redis
	hub     *sse.Hub
	metrics *metrics.Metrics
	loc     *time.Location
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	classRepository class.ClassRepository,
	userRepository user.UserRepository,
	engine *Engine,
	redis *cache.Redis,
	hub *sse.Hub,
	m *metrics.Metrics,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		ClassRepository:      classRepository,
		UserRepository:       userRepository,
		engine:               engine,
		cache:                redis,
		hub:                  hub,
		metrics:              m,
		loc:                  loc,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:             record.ID,
		ClassID:        record.ClassID,
		ClassName:      record.ClassName,
		StudentID:      record.StudentID,
		StudentName:    record.StudentName,
		OccurrenceDate: record.OccurrenceDate.Format("2006-01-02"),
		ScheduledAt:    record.ScheduledAt.Format(time.RFC3339),
		CheckedInAt:    timePtrToString(record.CheckedInAt),
		Status:         string(record.Status),
		LateReason:     record.LateReason,
	}
}

func toWindowResponse(result EvaluationResult) attendance.WindowResponse {
	resp := attendance.WindowResponse{
		State:      string(result.State),
		FiresToday: result.FiresToday,
	}
	if result.FiresToday {
		resp.ScheduledAt = result.Window.ScheduledAt.Format(time.RFC3339)
		resp.EarliestOnTime = result.Window.EarliestOnTime.Format(time.RFC3339)
		resp.LatestOnTime = result.Window.LatestOnTime.Format(time.RFC3339)
		resp.LatestLate = result.Window.LatestLate.Format(time.RFC3339)
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	studentID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, req.ClassID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	isMember, err := s.ClassRepository.IsMember(ctx, classData.ID, studentID)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to check class membership: %w", err)
	}
	if !isMember {
		return attendance.CheckInResponse{}, class.ErrNotMember
	}

	var enrolled []float32
	if classData.RequireFace {
		if req.FaceSample == nil {
			return attendance.CheckInResponse{}, validator.ValidationErrors{{
				Field:   "face_sample",
				Message: "face_sample is required for this class",
			}}
		}
		account, err := s.UserRepository.GetByID(ctx, studentID)
		if err != nil {
			return attendance.CheckInResponse{}, err
		}
		enrolled = account.FaceDescriptor
	}

	now := time.Now().In(s.loc)

	result, err := s.engine.Evaluate(EvaluationInput{
		Schedule:    classData.Schedule,
		Geofence:    classData.Geofence,
		Position:    req.Position,
		RequireFace: classData.RequireFace,
		Enrolled:    enrolled,
		Sample:      req.FaceSample,
		Now:         now,
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	windowResp := toWindowResponse(result)

	if result.Verdict.Status == attendance.VerdictRejected {
		s.countVerdict(result.Verdict)
		return attendance.CheckInResponse{
			Status:   string(result.Verdict.Status),
			Reason:   result.Verdict.Reason,
			Window:   &windowResp,
			Recorded: false,
		}, nil
	}

	occurrenceDate := time.Date(
		result.Window.ScheduledAt.Year(), result.Window.ScheduledAt.Month(), result.Window.ScheduledAt.Day(),
		0, 0, 0, 0, s.loc,
	)

	lockKey := fmt.Sprintf("checkin:%s:%s:%s", classData.ID, studentID, occurrenceDate.Format("2006-01-02"))
	acquired, err := s.cache.AcquireOnce(ctx, lockKey, checkInLockTTL)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to acquire check-in lock: %w", err)
	}
	if !acquired {
		return attendance.CheckInResponse{}, attendance.ErrCheckInInFlight
	}
	defer func() {
		_ = s.cache.Release(context.WithoutCancel(ctx), lockKey)
	}()

	record, err := s.AttendanceRepository.Create(ctx, attendance.Record{
		ClassID:        classData.ID,
		StudentID:      studentID,
		OccurrenceDate: occurrenceDate,
		ScheduledAt:    result.Window.ScheduledAt,
		CheckedInAt:    &now,
		Status:         attendance.Status(result.Verdict.Status),
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	record.ClassName = &classData.Name

	s.countVerdict(result.Verdict)

	recordResp := toRecordResponse(record)
	s.hub.Publish(classData.ID, sse.Event{
		Topic: classData.ID,
		Event: "attendance.recorded",
		Data:  recordResp,
	})

	return attendance.CheckInResponse{
		Status:   string(result.Verdict.Status),
		Record:   &recordResp,
		Window:   &windowResp,
		Recorded: true,
	}, nil
}

func (s *AttendanceServiceImpl) countVerdict(verdict attendance.Verdict) {
	if s.metrics == nil {
		return
	}
	s.metrics.CheckInVerdicts.WithLabelValues(string(verdict.Status), verdict.Reason).Inc()
}

// WindowStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) WindowStatus(ctx context.Context, classID string) (attendance.WindowResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.WindowResponse{}, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, classID)
	if err != nil {
		return attendance.WindowResponse{}, err
	}

	if classData.TeacherID != userID {
		isMember, err := s.ClassRepository.IsMember(ctx, classData.ID, userID)
		if err != nil {
			return attendance.WindowResponse{}, fmt.Errorf("failed to check class membership: %w", err)
		}
		if !isMember {
			return attendance.WindowResponse{}, class.ErrNotMember
		}
	}

	now := time.Now().In(s.loc)
	window, state, firesToday := classData.Schedule.EvaluateAt(now, s.engine.policy)

	return toWindowResponse(EvaluationResult{
		Window:     window,
		State:      state,
		FiresToday: firesToday,
	}), nil
}

// SubmitLateReason implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SubmitLateReason(ctx context.Context, req attendance.LateReasonRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	studentID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if record.StudentID != studentID {
		return attendance.RecordResponse{}, attendance.ErrUnauthorized
	}
	if record.Status != attendance.StatusLate {
		return attendance.RecordResponse{}, attendance.ErrNotLate
	}
	if record.LateReason != nil {
		return attendance.RecordResponse{}, attendance.ErrReasonAlreadySet
	}

	if err := s.AttendanceRepository.SetLateReason(ctx, record.ID, req.Reason); err != nil {
		return attendance.RecordResponse{}, err
	}

	record.LateReason = &req.Reason
	return toRecordResponse(record), nil
}

// MyHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	studentID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.AttendanceRepository.ListByStudent(ctx, studentID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

// ClassHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassHistory(ctx context.Context, classID string, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	teacherID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, classID)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if classData.TeacherID != teacherID {
		return attendance.ListRecordsResponse{}, class.ErrNotClassTeacher
	}

	records, total, err := s.AttendanceRepository.ListByClass(ctx, classID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

func buildListResponse(records []attendance.Record, total int64, filter attendance.HistoryFilter) attendance.ListRecordsResponse {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Records:    responses,
	}
}
