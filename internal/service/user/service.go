package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
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

// Profile implements user.UserService.
func (s *UserServiceImpl) Profile(ctx context.Context) (user.ProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return user.NewProfileResponse(userData), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if req.DisplayName != nil {
		userData.DisplayName = *req.DisplayName
	}

	if err := s.UserRepository.UpdateProfile(ctx, userData); err != nil {
		return user.ProfileResponse{}, err
	}

	return user.NewProfileResponse(userData), nil
}

// EnrollFace implements user.UserService.
func (s *UserServiceImpl) EnrollFace(ctx context.Context, req user.EnrollFaceRequest) (user.ProfileResponse, error) {
	return s.setDescriptor(ctx, req, false)
}

// ReEnrollFace implements user.UserService.
func (s *UserServiceImpl) ReEnrollFace(ctx context.Context, req user.EnrollFaceRequest) (user.ProfileResponse, error) {
	return s.setDescriptor(ctx, req, true)
}

func (s *UserServiceImpl) setDescriptor(ctx context.Context, req user.EnrollFaceRequest, replace bool) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if !replace && userData.HasFaceEnrollment() {
		return user.ProfileResponse{}, user.ErrFaceAlreadyEnrolled
	}
	if replace && !userData.HasFaceEnrollment() {
		return user.ProfileResponse{}, user.ErrFaceNotEnrolled
	}

	if err := s.UserRepository.SetFaceDescriptor(ctx, userID, req.Descriptor); err != nil {
		return user.ProfileResponse{}, err
	}

	userData.FaceDescriptor = req.Descriptor
	return user.NewProfileResponse(userData), nil
}
