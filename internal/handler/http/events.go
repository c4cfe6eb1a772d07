package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/handler/http/response"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/jwt"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/metrics"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	// Token mints a short-lived SSE token for the authenticated user.
	Token(w http.ResponseWriter, r *http.Request)
	// Stream serves the live check-in feed for a class over SSE.
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventsHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
	classRepo  class.ClassRepository
	metrics    *metrics.Metrics
}

func NewEventsHandler(jwtService jwt.Service, hub *sse.Hub, classRepo class.ClassRepository, m *metrics.Metrics) EventsHandler {
	return &EventsHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
		classRepo:  classRepo,
		metrics:    m,
	}
}

func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// Token implements EventsHandler.
func (h *EventsHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		slog.Error("SSE token generation error", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream implements EventsHandler. EventSource cannot set headers, so the
// token rides in the query string instead of Authorization.
func (h *EventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing stream token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	classID := chi.URLParam(r, "classID")
	classData, err := h.classRepo.GetByID(r.Context(), classID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if classData.TeacherID != userID {
		response.HandleError(w, class.ErrNotClassTeacher)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(classID)
	defer cleanup()

	if h.metrics != nil {
		h.metrics.SSESubscribers.Inc()
		defer h.metrics.SSESubscribers.Dec()
	}

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"class_id\":\"%s\"}\n\n", classID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
