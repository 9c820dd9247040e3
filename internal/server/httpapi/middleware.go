package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akarpov/memopad/internal/common"
	"github.com/akarpov/memopad/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id stored by the auth
// middleware. The second result is false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// apiKeyMiddleware rejects requests without the shared project key. The key
// identifies the installation, not the user.
func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.ApiKeyHeaderName) != s.apiKey {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "missing or invalid api key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware verifies the bearer access token and stores the user id in
// the request context. Websocket clients cannot set headers, so a ?token=
// query parameter is accepted as a fallback.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == r.Header.Get("Authorization") {
			tokenString = r.URL.Query().Get("token")
		}
		if tokenString == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "token expired"})
				return
			}
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
