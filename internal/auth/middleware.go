package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var errNoToken = errors.New("auth: missing bearer token")

// contextKey is unexported so only this package can read or write the
// userID value in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes. It reads the
// bearer token from the Authorization header, validates it, and stores
// the userID in the request context. Missing or invalid tokens end the
// request with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the
// request context. Returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the given userID. Test helper
// for exercising handlers without the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// extractUserID reads the "Authorization: Bearer <token>" header and
// validates the token.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return "", errNoToken
	}

	return tokens.Validate(tokenStr)
}
