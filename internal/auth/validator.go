package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials email/password pair did not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("enter a valid email address")
	ErrPasswordRequired = errors.New("password is required")
)

// Validator checks a single demo account. Input problems are returned as
// errors carrying the message shown to the user.
type Validator struct {
	email string
	hash  []byte
}

// NewValidator uses passwordHash (bcrypt) when set, otherwise hashes password.
func NewValidator(email, password, passwordHash string) (*Validator, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("auth: account %w", ErrEmailRequired)
	}

	hash := []byte(passwordHash)
	if passwordHash == "" {
		if password == "" {
			return nil, fmt.Errorf("auth: account %w", ErrPasswordRequired)
		}
		var err error
		hash, err = HashPassword(password)
		if err != nil {
			return nil, err
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth: invalid password hash: %w", err)
	}

	return &Validator{email: strings.ToLower(email), hash: hash}, nil
}

// HashPassword bcrypt with the default cost
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Validate returns nil when the credentials match the configured account.
func (v *Validator) Validate(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !validEmail(email) {
		return ErrEmailInvalid
	}
	if password == "" {
		return ErrPasswordRequired
	}

	if !strings.EqualFold(email, v.email) {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// validEmail bare address only, no display name
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
