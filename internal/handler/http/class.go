package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/handler/http/response"
)

type ClassHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type ClassHandlerImpl struct {
	classService class.ClassService
}

func NewClassHandler(classService class.ClassService) ClassHandler {
	return &ClassHandlerImpl{classService: classService}
}

// Create implements ClassHandler.
func (h *ClassHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req class.CreateClassRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateClass decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.classService.CreateClass(r.Context(), req)
	if err != nil {
		slog.Error("CreateClass service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Class created successfully", created)
}

// Get implements ClassHandler.
func (h *ClassHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	classData, err := h.classService.GetClass(r.Context(), classID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, classData)
}

// UpdateSettings implements ClassHandler.
func (h *ClassHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req class.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "classID")

	updated, err := h.classService.UpdateSettings(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Class settings updated successfully", updated)
}

// ListMine implements ClassHandler.
func (h *ClassHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, classes)
}

// Join implements ClassHandler.
func (h *ClassHandlerImpl) Join(w http.ResponseWriter, r *http.Request) {
	var req class.JoinClassRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("JoinClass decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	joined, err := h.classService.Join(r.Context(), req)
	if err != nil {
		slog.Error("JoinClass service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Joined class successfully", joined)
}

// ListMembers implements ClassHandler.
func (h *ClassHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	members, err := h.classService.ListMembers(r.Context(), classID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
