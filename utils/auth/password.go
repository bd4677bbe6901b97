package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// MinPasswordLength is the minimum password length
	MinPasswordLength = 8
)

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// IsBcryptHash reports whether s looks like a bcrypt hash
func IsBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// CheckCredentials compares a login attempt with the configured admin credentials.
// The configured password may be plain text or a bcrypt hash. Empty configuration never matches.
func CheckCredentials(configuredUser, configuredPassword, username, password string) bool {
	if configuredUser == "" || configuredPassword == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(configuredUser), []byte(username)) == 1

	var passwordOK bool
	if IsBcryptHash(configuredPassword) {
		passwordOK = VerifyPassword(configuredPassword, password) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(configuredPassword), []byte(password)) == 1
	}

	return userOK && passwordOK
}
