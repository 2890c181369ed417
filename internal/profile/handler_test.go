package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acm-udst/club-portal-backend/internal/auth"
	"github.com/acm-udst/club-portal-backend/internal/middleware"
	"github.com/acm-udst/club-portal-backend/internal/models"
)

// stubLedger returns canned ledger reads for a single user.
type stubLedger struct {
	total   int
	rank    int
	history []models.XPRecord
	board   []models.LeaderboardEntry
}

func (s *stubLedger) AppendTx(context.Context, pgx.Tx, uuid.UUID, int, string) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (s *stubLedger) Append(context.Context, uuid.UUID, int, string) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (s *stubLedger) TotalFor(context.Context, uuid.UUID) (int, error) { return s.total, nil }
func (s *stubLedger) HistoryFor(context.Context, uuid.UUID) ([]models.XPRecord, error) {
	return s.history, nil
}
func (s *stubLedger) Leaderboard(context.Context, int) ([]models.LeaderboardEntry, error) {
	return s.board, nil
}
func (s *stubLedger) RankFor(context.Context, uuid.UUID) (int, error) { return s.rank, nil }

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) GetUser(context.Context, uuid.UUID) (*models.User, error) {
	return s.user, nil
}

func TestGetMe(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "JaneDoe", Email: "jane@udst.example"}
	h := NewHandler(&stubUsers{user: user}, &stubLedger{total: 250, rank: 7}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	sess := &auth.Session{UserID: user.ID, Email: user.Email}
	req = req.WithContext(middleware.WithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "JaneDoe" {
		t.Errorf("username: got %q", resp.Username)
	}
	if resp.TotalXP != 250 || resp.Level != 3 || resp.Progress != 50 {
		t.Errorf("progression: got total=%d level=%d progress=%d, want 250/3/50",
			resp.TotalXP, resp.Level, resp.Progress)
	}
	if resp.Rank != 7 {
		t.Errorf("rank: got %d, want 7", resp.Rank)
	}
}

func TestGetMe_Unauthorized(t *testing.T) {
	h := NewHandler(&stubUsers{}, &stubLedger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestXPHistory_EmptyIsNotAnError(t *testing.T) {
	h := NewHandler(&stubUsers{}, &stubLedger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/xp-history", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), &auth.Session{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	h.XPHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty history should encode as [], got %q", body)
	}
}

func TestLeaderboard_LimitValidation(t *testing.T) {
	h := NewHandler(&stubUsers{}, &stubLedger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard?limit=0", nil)
	rec := httptest.NewRecorder()
	h.Leaderboard(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
