package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinFullNameLength = 2
	MaxFullNameLength = 255
	MinPasswordLength = 8
	MaxNotesLength    = 2000
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^0\d{10}$`)
)

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain an upper-case letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain a lower-case letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain a digit")
	}
	return nil
}

// ValidateFullName checks the display name length.
func ValidateFullName(name string) error {
	return ValidateLength("full name", strings.TrimSpace(name), MinFullNameLength, MaxFullNameLength)
}

// ValidatePhone checks a Pakistani mobile number (11 digits, leading zero).
func ValidatePhone(phone string) error {
	if !phoneRegexp.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("phone must be 11 digits starting with 0")
	}
	return nil
}

// ValidateLength checks a string length in runes.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}
