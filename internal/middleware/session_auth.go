package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/acm-udst/club-portal-backend/internal/auth"
)

type contextKey string

const ctxSessionKey contextKey = "session"

// TokenValidator is the slice of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Session, error)
}

// SessionAuth authenticates requests by validating the Bearer token and
// putting the resulting session into the request context. Handlers pass
// the session explicitly into membership and ledger operations; it is
// never read from global state.
func SessionAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r)
			if raw == "" {
				http.Error(w, `{"error":"missing or malformed Authorization header"}`, http.StatusUnauthorized)
				return
			}
			sess, err := validator.ValidateToken(r.Context(), raw)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey, &sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx returns the authenticated session or nil.
func SessionFromCtx(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(ctxSessionKey).(*auth.Session)
	return sess
}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, sess *auth.Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey, sess)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
