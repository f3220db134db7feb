// FilePath: internal/models/models.user.go
package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/ikigain/ForestOS/internal/errors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	FullName       *string   `json:"full_name" db:"full_name"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsSuperuser    bool      `json:"is_superuser" db:"is_superuser"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreate is the registration payload.
type UserCreate struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// Validate normalizes the email and checks the password length.
func (in *UserCreate) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return errors.NewValidationError("a valid email address is required", err)
	}
	if len(in.Password) < MinPasswordLength {
		return errors.NewValidationError("password must be at least 8 characters", nil)
	}
	return nil
}

// LoginForm mirrors the OAuth2 password grant form.
type LoginForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
