package middleware

import (
	"context"
	"net/http"
)

// ContextKey is the type for context keys.
type ContextKey string

// UserIDContextKey is the context key for the acting user's ID.
const UserIDContextKey ContextKey = "user_id"

// userIDHeader carries the acting user's ID, set by the API gateway in front
// of this service.
const userIDHeader = "X-User-ID"

// Identity extracts the acting user from the request headers and stores it in
// the context. Mutating endpoints need it for the audit trail.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID != "" {
			ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext extracts the acting user's ID from context.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDContextKey).(string)
	return userID
}
