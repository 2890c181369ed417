package events

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/acm-udst/club-portal-backend/internal/middleware"
	"github.com/acm-udst/club-portal-backend/internal/models"
)

type CreateEventRequest struct {
	Title     string `json:"title"`
	EventDate string `json:"event_date,omitempty"` // RFC 3339, optional
}

type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps gate errors onto HTTP statuses. Store failures are
// surfaced as 500 with the detail kept in the log.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		http.Error(w, "login required", http.StatusUnauthorized)
	case errors.Is(err, ErrTitleRequired):
		http.Error(w, "event title is required", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrNotCreator):
		http.Error(w, "only the creator can delete an event", http.StatusForbidden)
	default:
		h.log.Error(op+" failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// POST /api/v1/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var eventDate *time.Time
	if req.EventDate != "" {
		t, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			http.Error(w, "event_date must be RFC 3339", http.StatusBadRequest)
			return
		}
		eventDate = &t
	}
	ev, err := h.svc.Create(r.Context(), middleware.SessionFromCtx(r.Context()), req.Title, eventDate)
	if err != nil {
		h.writeError(w, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// GET /api/v1/events
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.SessionFromCtx(r.Context()))
	if err != nil {
		h.writeError(w, "list events", err)
		return
	}
	if list == nil {
		list = []models.EventWithJoined{}
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /api/v1/events/{id}/join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Join(r.Context(), middleware.SessionFromCtx(r.Context()), id); err != nil {
		h.writeError(w, "join event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/events/{id}/leave
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Leave(r.Context(), middleware.SessionFromCtx(r.Context()), id); err != nil {
		h.writeError(w, "leave event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/events/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.SessionFromCtx(r.Context()), id); err != nil {
		h.writeError(w, "delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/events/{id}/participants
func (h *Handler) Participants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Participants(r.Context(), id)
	if err != nil {
		h.writeError(w, "list participants", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
