package auth

import (
	"net/mail"

	passwordvalidator "github.com/wagslane/go-password-validator"

	"contactbook/infrastructure"
)

const passwordMinEntropyBits = 30

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signupRequest) Validate() error {
	if !validEmail(r.Email) {
		return infrastructure.NewValidationError("email", "must be a valid email address")
	}
	if err := passwordvalidator.Validate(r.Password, passwordMinEntropyBits); err != nil {
		return infrastructure.NewValidationError("password", err.Error())
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	if !validEmail(r.Email) {
		return infrastructure.NewValidationError("email", "must be a valid email address")
	}
	if r.Password == "" {
		return infrastructure.NewValidationError("password", "must not be empty")
	}
	return nil
}

type resendRequest struct {
	Email string `json:"email"`
}

func (r *resendRequest) Validate() error {
	if !validEmail(r.Email) {
		return infrastructure.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
