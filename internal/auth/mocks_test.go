package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"contactbook/infrastructure"
	"contactbook/internal/user"
)

// memoryUserRepo is an in-memory user.Repository for service and handler
// tests.
type memoryUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return infrastructure.ErrEmailTaken
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, infrastructure.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, infrastructure.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[u.ID]
	if !ok {
		return infrastructure.ErrUserNotFound
	}
	delete(r.byEmail, stored.Email)
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func (r *memoryUserRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

// captureMailer records enqueued verification emails instead of sending.
type captureMailer struct {
	mu     sync.Mutex
	sent   []string
	tokens []string
}

func (m *captureMailer) EnqueueVerification(to, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	m.tokens = append(m.tokens, token)
}

func (m *captureMailer) lastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tokens) == 0 {
		return ""
	}
	return m.tokens[len(m.tokens)-1]
}
