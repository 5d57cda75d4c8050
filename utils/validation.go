package utils

import "unicode"

// ValidatePassword checks password complexity rules and returns one message
// per violated rule. An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var problems []string

	if len(password) < 8 {
		problems = append(problems, "password must be at least 8 characters")
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
		problems = append(problems, "password must contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "password must contain a lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "password must contain a digit")
	}

	return problems
}
