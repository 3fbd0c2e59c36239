package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"contactbook/infrastructure"
)

type JSONHandler struct {
	service      *Service
	cookieSecure bool
}

func NewJSONHandler(service *Service, cookieSecure bool) *JSONHandler {
	return &JSONHandler{
		service:      service,
		cookieSecure: cookieSecure,
	}
}

func (h *JSONHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.Signup(r.Context(), req.Email, req.Password); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Registration successful. Please check your email to activate your account.",
	})
}

func (h *JSONHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"access_token": pair.AccessToken,
	})
}

func (h *JSONHandler) Verify(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["token"]

	if err := h.service.VerifyUser(r.Context(), raw); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Your email has been successfully verified. You can now log in to your account.",
	})
}

func (h *JSONHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	if err := h.service.ResendVerificationEmail(r.Context(), req.Email); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Please check your email to activate your account.",
	})
}

func (h *JSONHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw := h.refreshTokenFrom(r)
	if raw == "" {
		unauthorized(w)
		return
	}

	pair, err := h.service.Refresh(r.Context(), raw)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{
		"access_token": pair.AccessToken,
	})
}

func (h *JSONHandler) refreshTokenFrom(r *http.Request) string {
	if c, err := r.Cookie("refresh_token"); err == nil && c.Value != "" {
		return c.Value
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *JSONHandler) setRefreshCookie(w http.ResponseWriter, raw string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    raw,
		Path:     "/",
		MaxAge:   int(h.service.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetupRoutes mounts the auth endpoints on the given (typically /api) router.
func SetupRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify/{token}", h.Verify).Methods(http.MethodGet)
	r.HandleFunc("/auth/verify", h.ResendVerification).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost)
}
