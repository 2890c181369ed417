// Package profile serves the member-facing read surface: the profile
// card, the XP history, and the leaderboard.
package profile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/acm-udst/club-portal-backend/internal/ledger"
	"github.com/acm-udst/club-portal-backend/internal/middleware"
	"github.com/acm-udst/club-portal-backend/internal/models"
	"github.com/acm-udst/club-portal-backend/internal/progression"
)

const defaultLeaderboardSize = 5

// UserLookup resolves the profile owner's account record.
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type MeResponse struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"join_date"`
	TotalXP  int       `json:"total_xp"`
	Level    int       `json:"level"`
	Progress int       `json:"progress"`
	Rank     int       `json:"rank"`
}

type Handler struct {
	users  UserLookup
	ledger ledger.Service
	log    *slog.Logger
}

func NewHandler(users UserLookup, ledgerSvc ledger.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{users: users, ledger: ledgerSvc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/v1/profile/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := h.users.GetUser(r.Context(), sess.UserID)
	if err != nil {
		h.log.Error("get user failed", "error", err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	total, err := h.ledger.TotalFor(r.Context(), sess.UserID)
	if err != nil {
		h.log.Error("total xp failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	rank, err := h.ledger.RankFor(r.Context(), sess.UserID)
	if err != nil {
		h.log.Error("rank failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	summary := progression.Summarize(total)
	writeJSON(w, http.StatusOK, MeResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		JoinDate: u.CreatedAt,
		TotalXP:  summary.TotalXP,
		Level:    summary.Level,
		Progress: summary.Progress,
		Rank:     rank,
	})
}

// GET /api/v1/profile/xp-history
func (h *Handler) XPHistory(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	records, err := h.ledger.HistoryFor(r.Context(), sess.UserID)
	if err != nil {
		h.log.Error("xp history failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.XPRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GET /api/v1/leaderboard?limit=N
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := h.ledger.Leaderboard(r.Context(), limit)
	if err != nil {
		h.log.Error("leaderboard failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
