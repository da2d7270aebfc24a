package services

import (
	"unicode"
	"unicode/utf8"

	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

// ValidateUsername enforces 3..30 characters drawn from [A-Za-z0-9_].
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return domainerrors.ErrInvalidUsername
	}
	for _, r := range username {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			continue
		}
		return domainerrors.ErrInvalidUsername
	}
	return nil
}

// ValidatePassword enforces 8..128 characters with at least one lowercase
// ASCII letter, one uppercase ASCII letter and one ASCII digit.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return domainerrors.ErrWeakPassword
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return domainerrors.ErrWeakPassword
	}
	return nil
}

func ValidateRegistration(username, password, confirmation string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirmation {
		return domainerrors.ErrPasswordMismatch
	}
	return nil
}
