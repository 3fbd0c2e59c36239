package infrastructure

import (
	"encoding/json"
	"errors"
	"net/http"
)

// WriteJSON writes v as the JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetail writes the standard {"detail": ...} error body.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// WriteUnauthorized writes the single credential-failure response shared by
// every authentication check, so no branch is distinguishable from another.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
}

// WriteError translates a service error into its HTTP response. Unknown
// errors become an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		WriteDetail(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		WriteDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrContactNotFound):
		WriteDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrAlreadyVerified):
		WriteDetail(w, http.StatusConflict, err.Error())
	default:
		WriteDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
