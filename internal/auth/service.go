package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"contactbook/infrastructure"
	"contactbook/internal/token"
	"contactbook/internal/user"
)

const bcryptCost = 12

// Mailer schedules verification emails. Delivery is fire-and-forget: the
// implementation must never block or fail the calling request.
type Mailer interface {
	EnqueueVerification(to, token string)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	users  user.Repository
	codec  *token.Codec
	mailer Mailer
	log    *zap.Logger

	accessTTL       time.Duration
	refreshTTL      time.Duration
	verificationTTL time.Duration
}

func NewService(
	users user.Repository,
	codec *token.Codec,
	mailer Mailer,
	log *zap.Logger,
	accessTTL, refreshTTL, verificationTTL time.Duration,
) *Service {
	return &Service{
		users:           users,
		codec:           codec,
		mailer:          mailer,
		log:             log,
		accessTTL:       accessTTL,
		refreshTTL:      refreshTTL,
		verificationTTL: verificationTTL,
	}
}

// Signup registers a new unverified account and schedules the verification
// email. The verification token is never returned to the caller.
func (s *Service) Signup(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return infrastructure.ErrEmailTaken
	} else if !errors.Is(err, infrastructure.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		Verified:     false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}

	raw, err := s.codec.Encode(u.ID, token.PurposeVerification, s.verificationTTL)
	if err != nil {
		return err
	}
	s.mailer.EnqueueVerification(u.Email, raw)

	s.log.Info("user signed up", zap.String("user_id", u.ID.String()))
	return nil
}

// VerifyUser consumes a verification token and activates the account. A
// token for an already-verified account is a conflict, not a silent success.
func (s *Service) VerifyUser(ctx context.Context, raw string) error {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return err
	}
	if claims.Purpose != token.PurposeVerification {
		return infrastructure.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return infrastructure.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Verified {
		return infrastructure.ErrAlreadyVerified
	}

	u.Verified = true
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.log.Info("user verified", zap.String("user_id", u.ID.String()))
	return nil
}

// Login checks credentials and returns a fresh token pair. Unknown email,
// wrong password and an unverified account are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, infrastructure.ErrUserNotFound) {
			return nil, infrastructure.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, infrastructure.ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, infrastructure.ErrInvalidCredentials
	}

	return s.issuePair(u.ID)
}

// Refresh exchanges a valid refresh token for a new pair. Any failure is
// reported as an invalid token, without detail.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, infrastructure.ErrInvalidToken
	}
	if claims.Purpose != token.PurposeRefresh {
		return nil, infrastructure.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, infrastructure.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil || !u.Verified {
		return nil, infrastructure.ErrInvalidToken
	}

	return s.issuePair(u.ID)
}

// ResendVerificationEmail issues a fresh verification token for a pending
// account. Previously issued tokens remain valid until their own expiry.
func (s *Service) ResendVerificationEmail(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.Verified {
		return infrastructure.ErrAlreadyVerified
	}

	raw, err := s.codec.Encode(u.ID, token.PurposeVerification, s.verificationTTL)
	if err != nil {
		return err
	}
	s.mailer.EnqueueVerification(u.Email, raw)

	s.log.Info("verification email re-queued", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *Service) issuePair(id uuid.UUID) (*TokenPair, error) {
	access, err := s.codec.Encode(id, token.PurposeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Encode(id, token.PurposeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshTTL exposes the configured refresh lifetime for cookie max-age.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}
