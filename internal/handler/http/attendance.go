package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	WindowStatus(w http.ResponseWriter, r *http.Request)
	SubmitLateReason(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	ClassHistory(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Rejections are outcomes, not errors: 200 with the reason attached.
	if result.Recorded {
		response.Created(w, "Attendance recorded", result)
		return
	}
	response.Success(w, result)
}

// WindowStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) WindowStatus(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	window, err := h.attendanceService.WindowStatus(r.Context(), classID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, window)
}

// SubmitLateReason implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SubmitLateReason(w http.ResponseWriter, r *http.Request) {
	var req attendance.LateReasonRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitLateReason decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "recordID")

	record, err := h.attendanceService.SubmitLateReason(r.Context(), req)
	if err != nil {
		slog.Error("SubmitLateReason service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late reason recorded", record)
}

// MyHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	filter := historyFilterFromQuery(r)

	result, err := h.attendanceService.MyHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeHistory(w, result)
}

// ClassHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClassHistory(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	filter := historyFilterFromQuery(r)

	result, err := h.attendanceService.ClassHistory(r.Context(), classID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeHistory(w, result)
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	var filter attendance.HistoryFilter

	q := r.URL.Query()
	if v := q.Get("class_id"); v != "" {
		filter.ClassID = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}

	return filter
}

func writeHistory(w http.ResponseWriter, result attendance.ListRecordsResponse) {
	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
