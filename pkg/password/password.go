package password

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every stored hash.
const Cost = 12

// Hash returns a salted bcrypt hash of the raw password.
func Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether raw matches the stored hash.
func Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// ValidatePolicy checks the password against the account policy and returns
// every violated rule so the client can render all of them at once.
func ValidatePolicy(raw string) []string {
	var violations []string

	if len(raw) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}

	hasUpper := false
	hasDigit := false
	for _, r := range raw {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}

	if !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain at least one number")
	}

	return violations
}
