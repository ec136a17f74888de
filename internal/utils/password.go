package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/avencia/company-cms-api/internal/constants"
)

// commonSubstrings are rejected anywhere inside a password, case-insensitively.
var commonSubstrings = []string{
	"password",
	"123456",
	"qwerty",
	"admin",
	"letmein",
}

// ValidatePassword checks a plaintext password against the policy and returns
// every violation, so the client can show them all at once. An empty slice
// means the password is acceptable.
func ValidatePassword(password string) []string {
	var violations []string

	if len(password) < constants.MinPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters long", constants.MinPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain a digit")
	}

	lowered := strings.ToLower(password)
	for _, s := range commonSubstrings {
		if strings.Contains(lowered, s) {
			violations = append(violations, fmt.Sprintf("password must not contain %q", s))
		}
	}

	return violations
}
