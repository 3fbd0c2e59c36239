package user

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"contactbook/infrastructure"
)

// CurrentUser reports the authenticated user for the request, as stored by
// the auth middleware.
type CurrentUser func(ctx context.Context) (*User, bool)

type JSONHandler struct {
	current CurrentUser
}

func NewJSONHandler(current CurrentUser) *JSONHandler {
	return &JSONHandler{current: current}
}

func (h *JSONHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, u)
}

// SetupRoutes mounts the user endpoints on a router already behind the auth
// middleware.
func SetupRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/users/me", h.Me).Methods(http.MethodGet)
}
