package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/acm-udst/club-portal-backend/internal/auth"
)

// fakeValidator accepts exactly one token value.
type fakeValidator struct {
	token string
	sess  auth.Session
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (auth.Session, error) {
	if token != f.token {
		return auth.Session{}, errors.New("bad token")
	}
	return f.sess, nil
}

func TestSessionAuth_ValidToken(t *testing.T) {
	want := auth.Session{UserID: uuid.New(), Email: "jane@udst.example"}
	validator := &fakeValidator{token: "good-token", sess: want}

	var got *auth.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionAuth(validator)(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got == nil || got.UserID != want.UserID || got.Email != want.Email {
		t.Errorf("session in context: got %+v, want %+v", got, want)
	}
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	handler := SessionAuth(&fakeValidator{token: "good-token"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionAuth_BadToken(t *testing.T) {
	handler := SessionAuth(&fakeValidator{token: "good-token"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionFromCtx_Empty(t *testing.T) {
	if sess := SessionFromCtx(context.Background()); sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}
