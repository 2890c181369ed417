package router

import (
	"net/http"

	"github.com/acm-udst/club-portal-backend/internal/auth"
	"github.com/acm-udst/club-portal-backend/internal/events"
	"github.com/acm-udst/club-portal-backend/internal/handlers"
	"github.com/acm-udst/club-portal-backend/internal/profile"
)

// New returns an http.Handler serving the API under /api/v1.
// sessionAuth wraps every route that needs an identified member.
func New(
	authHandler *auth.Handler,
	eventsHandler *events.Handler,
	profileHandler *profile.Handler,
	sessionAuth func(http.Handler) http.Handler,
) http.Handler {
	mux := http.NewServeMux()

	// Public: signup/login and the static club pages' content.
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/club-info", handlers.ClubInfo)
	mux.HandleFunc("GET /api/v1/leaderboard", profileHandler.Leaderboard)

	// Everything below requires a session.
	protected := func(h http.HandlerFunc) http.Handler { return sessionAuth(h) }

	mux.Handle("GET /api/v1/events", protected(eventsHandler.List))
	mux.Handle("POST /api/v1/events", protected(eventsHandler.Create))
	mux.Handle("POST /api/v1/events/{id}/join", protected(eventsHandler.Join))
	mux.Handle("POST /api/v1/events/{id}/leave", protected(eventsHandler.Leave))
	mux.Handle("DELETE /api/v1/events/{id}", protected(eventsHandler.Delete))
	mux.Handle("GET /api/v1/events/{id}/participants", protected(eventsHandler.Participants))

	mux.Handle("GET /api/v1/profile/me", protected(profileHandler.GetMe))
	mux.Handle("GET /api/v1/profile/xp-history", protected(profileHandler.XPHistory))

	return mux
}
