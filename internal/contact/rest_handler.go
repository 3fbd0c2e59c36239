package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"contactbook/infrastructure"
	"contactbook/internal/user"
)

const defaultBirthdayWindowDays = 7

// CurrentUser reports the authenticated user for the request, as stored by
// the auth middleware.
type CurrentUser func(ctx context.Context) (*user.User, bool)

type JSONHandler struct {
	service *Service
	current CurrentUser
}

func NewJSONHandler(service *Service, current CurrentUser) *JSONHandler {
	return &JSONHandler{service: service, current: current}
}

type contactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	Notes     string `json:"notes"`
}

func (r *contactRequest) toContact() (*Contact, error) {
	if r.FirstName == "" {
		return nil, infrastructure.NewValidationError("first_name", "must not be empty")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return nil, infrastructure.NewValidationError("email", "must be a valid email address")
		}
	}

	c := &Contact{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Notes:     r.Notes,
	}
	if r.Birthday != "" {
		bd, err := time.Parse("2006-01-02", r.Birthday)
		if err != nil {
			return nil, infrastructure.NewValidationError("birthday", "must be formatted YYYY-MM-DD")
		}
		c.Birthday = &bd
	}
	return c, nil
}

func (h *JSONHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := req.toContact()
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	c.OwnerID = owner.ID

	if err := h.service.Create(r.Context(), c); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, c)
}

func (h *JSONHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	contacts, err := h.service.List(r.Context(), owner.ID, q.Get("q"), limit, offset)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*Contact{}
	}
	infrastructure.WriteJSON(w, http.StatusOK, contacts)
}

func (h *JSONHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.ErrContactNotFound)
		return
	}

	c, err := h.service.Get(r.Context(), owner.ID, id)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, c)
}

func (h *JSONHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.ErrContactNotFound)
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := req.toContact()
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	c.ID = id

	if err := h.service.Update(r.Context(), owner.ID, c); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, c)
}

func (h *JSONHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, infrastructure.ErrContactNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), owner.ID, id); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JSONHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.current(r.Context())
	if !ok {
		infrastructure.WriteUnauthorized(w)
		return
	}

	days := defaultBirthdayWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			infrastructure.WriteError(w, infrastructure.NewValidationError("days", "must be a non-negative integer"))
			return
		}
		days = n
	}

	contacts, err := h.service.UpcomingBirthdays(r.Context(), owner.ID, days)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*Contact{}
	}
	infrastructure.WriteJSON(w, http.StatusOK, contacts)
}

// SetupRoutes mounts the contact endpoints on a router already behind the
// auth middleware. The birthdays route must precede the {id} route.
func SetupRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/contacts/birthdays", h.UpcomingBirthdays).Methods(http.MethodGet)
	r.HandleFunc("/contacts", h.List).Methods(http.MethodGet)
	r.HandleFunc("/contacts", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/contacts/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/contacts/{id}", h.Delete).Methods(http.MethodDelete)
}
