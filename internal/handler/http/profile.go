package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	EnrollFace(w http.ResponseWriter, r *http.Request)
	ReEnrollFace(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	userService user.UserService
}

func NewProfileHandler(userService user.UserService) ProfileHandler {
	return &ProfileHandlerImpl{userService: userService}
}

// Me implements ProfileHandler.
func (h *ProfileHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.Profile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Update implements ProfileHandler.
func (h *ProfileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), req)
	if err != nil {
		slog.Error("UpdateProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// EnrollFace implements ProfileHandler.
func (h *ProfileHandlerImpl) EnrollFace(w http.ResponseWriter, r *http.Request) {
	var req user.EnrollFaceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EnrollFace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.userService.EnrollFace(r.Context(), req)
	if err != nil {
		slog.Error("EnrollFace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face enrolled successfully", profile)
}

// ReEnrollFace implements ProfileHandler.
func (h *ProfileHandlerImpl) ReEnrollFace(w http.ResponseWriter, r *http.Request) {
	var req user.EnrollFaceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReEnrollFace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.userService.ReEnrollFace(r.Context(), req)
	if err != nil {
		slog.Error("ReEnrollFace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face enrollment replaced successfully", profile)
}
