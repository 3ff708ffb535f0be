package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"docstudio/internal/auth"
	"docstudio/internal/domain"
	"docstudio/internal/httputil"
)

// Auth verifies "Authorization: Bearer <jwt>" and stores the subject as the user ID.
// Requests without a header pass through anonymously unless required is set.
// A header that fails verification is always rejected.
func Auth(verifier auth.JWTVerifier, required bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.Error("token verification failed", "error", err, "path", r.URL.Path)
				}
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithAuthor(r, claims.GetUserID()))
		})
	}
}
