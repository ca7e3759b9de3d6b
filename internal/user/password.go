package user

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// Password policy violations. The strings are surfaced to users verbatim.
var (
	ErrPasswordLength  = errors.New("Password must be between 6 and 12 characters.")
	ErrPasswordUpper   = errors.New("Password must include at least one uppercase letter.")
	ErrPasswordLower   = errors.New("Password must include at least one lowercase letter.")
	ErrPasswordDigit   = errors.New("Password must include at least one number.")
	ErrPasswordSpecial = errors.New("Password must include at least one special character.")
)

// ValidatePassword enforces the signup password policy. Checks run in a fixed
// order and the first violation wins.
func ValidatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < 6 || n > 12 {
		return ErrPasswordLength
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}

	switch {
	case !upper:
		return ErrPasswordUpper
	case !lower:
		return ErrPasswordLower
	case !digit:
		return ErrPasswordDigit
	case !special:
		return ErrPasswordSpecial
	}
	return nil
}

// IsPolicyViolation reports whether err is one of the password policy errors.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrPasswordLength) ||
		errors.Is(err, ErrPasswordUpper) ||
		errors.Is(err, ErrPasswordLower) ||
		errors.Is(err, ErrPasswordDigit) ||
		errors.Is(err, ErrPasswordSpecial)
}
