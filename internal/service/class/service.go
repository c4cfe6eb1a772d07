package class

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/utils"
)

const joinCodeAttempts = 5

type ClassServiceImpl struct {
	class.ClassRepository
	user.UserRepository
}

func NewClassService(classRepository class.ClassRepository, userRepository user.UserRepository) class.ClassService {
	return &ClassServiceImpl{
		ClassRepository: classRepository,
		UserRepository:  userRepository,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

func toClassResponse(c class.Class) (class.ClassResponse, error) {
	scheduleJSON, err := json.Marshal(c.Schedule)
	if err != nil {
		return class.ClassResponse{}, fmt.Errorf("failed to encode schedule: %w", err)
	}

	return class.ClassResponse{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		TeacherID:   c.TeacherID,
		TeacherName: c.TeacherName,
		Schedule:    scheduleJSON,
		Geofence:    c.Geofence,
		RequireFace: c.RequireFace,
		MemberCount: c.MemberCount,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func (s *ClassServiceImpl) generateUniqueCode(ctx context.Context, seed string) (string, error) {
	for i := 0; i < joinCodeAttempts; i++ {
		code := utils.GenerateJoinCode(seed)
		exists, err := s.ClassRepository.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique join code after %d attempts", joinCodeAttempts)
}

// CreateClass implements class.ClassService.
func (s *ClassServiceImpl) CreateClass(ctx context.Context, req class.CreateClassRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	teacherID, role, err := claimsFromContext(ctx)
	if err != nil {
		return class.ClassResponse{}, err
	}
	if role != user.RoleTeacher {
		return class.ClassResponse{}, user.ErrTeacherAccessRequired
	}

	teacher, err := s.UserRepository.GetByID(ctx, teacherID)
	if err != nil {
		return class.ClassResponse{}, err
	}

	code, err := s.generateUniqueCode(ctx, teacher.DisplayName)
	if err != nil {
		return class.ClassResponse{}, err
	}

	created, err := s.ClassRepository.Create(ctx, class.Class{
		Name:        req.Name,
		Code:        code,
		TeacherID:   teacherID,
		Schedule:    req.Schedule,
		Geofence:    req.Geofence,
		RequireFace: req.RequireFace,
	})
	if err != nil {
		return class.ClassResponse{}, err
	}
	created.TeacherName = teacher.DisplayName

	return toClassResponse(created)
}

// GetClass implements class.ClassService.
func (s *ClassServiceImpl) GetClass(ctx context.Context, id string) (class.ClassResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return class.ClassResponse{}, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, id)
	if err != nil {
		return class.ClassResponse{}, err
	}

	if classData.TeacherID != userID {
		isMember, err := s.ClassRepository.IsMember(ctx, classData.ID, userID)
		if err != nil {
			return class.ClassResponse{}, fmt.Errorf("failed to check class membership: %w", err)
		}
		if !isMember {
			return class.ClassResponse{}, class.ErrNotMember
		}
	}

	return toClassResponse(classData)
}

// UpdateSettings implements class.ClassService.
func (s *ClassServiceImpl) UpdateSettings(ctx context.Context, req class.UpdateSettingsRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	teacherID, _, err := claimsFromContext(ctx)
	if err != nil {
		return class.ClassResponse{}, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, req.ID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	if classData.TeacherID != teacherID {
		return class.ClassResponse{}, class.ErrNotClassTeacher
	}

	if req.Name != nil {
		classData.Name = *req.Name
	}
	if req.Schedule != nil {
		classData.Schedule = *req.Schedule
	}
	if req.Geofence != nil {
		classData.Geofence = req.Geofence
	}
	if req.RemoveGeofence {
		classData.Geofence = nil
	}
	if req.RequireFace != nil {
		classData.RequireFace = *req.RequireFace
	}

	if err := s.ClassRepository.Update(ctx, classData); err != nil {
		return class.ClassResponse{}, err
	}

	return toClassResponse(classData)
}

// ListMine implements class.ClassService.
func (s *ClassServiceImpl) ListMine(ctx context.Context) ([]class.ClassResponse, error) {
	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var classes []class.Class
	if role == user.RoleTeacher {
		classes, err = s.ClassRepository.ListByTeacher(ctx, userID)
	} else {
		classes, err = s.ClassRepository.ListByStudent(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]class.ClassResponse, 0, len(classes))
	for _, c := range classes {
		resp, err := toClassResponse(c)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// Join implements class.ClassService.
func (s *ClassServiceImpl) Join(ctx context.Context, req class.JoinClassRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	studentID, role, err := claimsFromContext(ctx)
	if err != nil {
		return class.ClassResponse{}, err
	}
	if role != user.RoleStudent {
		return class.ClassResponse{}, user.ErrStudentAccessRequired
	}

	classData, err := s.ClassRepository.GetByCode(ctx, req.Code)
	if err != nil {
		return class.ClassResponse{}, err
	}

	if err := s.ClassRepository.AddMember(ctx, classData.ID, studentID); err != nil {
		return class.ClassResponse{}, err
	}

	return toClassResponse(classData)
}

// ListMembers implements class.ClassService.
func (s *ClassServiceImpl) ListMembers(ctx context.Context, classID string) ([]class.MemberResponse, error) {
	teacherID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	classData, err := s.ClassRepository.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if classData.TeacherID != teacherID {
		return nil, class.ErrNotClassTeacher
	}

	members, err := s.ClassRepository.ListMembers(ctx, classID)
	if err != nil {
		return nil, err
	}

	responses := make([]class.MemberResponse, 0, len(members))
	for _, m := range members {
		resp := class.MemberResponse{
			StudentID: m.StudentID,
			JoinedAt:  m.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.StudentName != nil {
			resp.DisplayName = *m.StudentName
		}
		if m.StudentEmail != nil {
			resp.Email = *m.StudentEmail
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
