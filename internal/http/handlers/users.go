package handlers

import (
	"net/http"

	"github.com/hongminglow/pilot-auth/internal/http/respond"
	"github.com/hongminglow/pilot-auth/internal/middleware"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct{}

// NewUserHandler constructs the handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Register attaches /v1/users/me behind requireAuth.
func (h *UserHandler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/v1/users/me", requireAuth(http.HandlerFunc(h.handleMe)))
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
