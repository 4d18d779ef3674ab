package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/pilot-auth/internal/auth"
	"github.com/hongminglow/pilot-auth/internal/http/respond"
	"github.com/hongminglow/pilot-auth/internal/models"
	"github.com/hongminglow/pilot-auth/internal/storage"
)

type userKey struct{}

// UserFromContext returns the user attached by Authenticate.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

// WithUser attaches user to ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// Authenticate rejects requests without a valid, current bearer token with
// 401 and otherwise passes the token's user down the context.
func Authenticate(tokens *auth.TokenManager, store storage.UserStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}
			id, err := claims.UserID()
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}
			user, err := store.FindByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					respond.Error(w, http.StatusUnauthorized, "invalid token")
					return
				}
				logger.ErrorContext(r.Context(), "authenticate: fetch user", "user_id", id, "error", err)
				respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
				return
			}
			if user.TokenVersion != claims.Version {
				respond.Error(w, http.StatusUnauthorized, "token revoked")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}
