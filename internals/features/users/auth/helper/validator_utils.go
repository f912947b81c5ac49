package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const PasswordCost = 12

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)

	ErrWeakPassword = errors.New("password must be at least 8 characters and contain letters and numbers")
)

func isAlphaNumeric(s string) bool {
	return hasLetter.MatchString(s) && hasNumber.MatchString(s)
}

// ValidatePassword: min 8 chars, at least one letter and one digit.
func ValidatePassword(pw string) error {
	if len(pw) < 8 || !isAlphaNumeric(pw) {
		return ErrWeakPassword
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
