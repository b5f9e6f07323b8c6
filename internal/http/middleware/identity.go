package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"textbook-logistics/internal/domain"
)

// UserHeader carries the authenticated user id set by the auth proxy.
const UserHeader = "X-User-ID"

type userKey struct{}

// WithUser returns ctx carrying uid.
func WithUser(ctx context.Context, uid domain.UserID) context.Context {
	return context.WithValue(ctx, userKey{}, uid)
}

// UserFrom returns the user stored by Identity.
func UserFrom(ctx context.Context) (domain.UserID, bool) {
	uid, ok := ctx.Value(userKey{}).(domain.UserID)
	return uid, ok
}

// Identity reads the user id header. Requests without a valid id pass through anonymously.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserHeader))
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(WithUser(r.Context(), domain.UserID(id)))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
