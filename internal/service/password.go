package service

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"instiwise-api/internal/model"
)

// bcryptCost is deliberately above the library default; registration
// and login are rare enough that the extra work factor is affordable.
const bcryptCost = 12

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored digest. A
// corrupted digest verifies as false rather than erroring, so callers
// cannot tell broken records apart from wrong passwords.
func CheckPassword(plain string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// ValidatePassword enforces the registration policy: at least eight
// characters with an uppercase letter and a digit.
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return model.ErrWeakPassword
	}

	var hasUpper, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasDigit {
		return model.ErrWeakPassword
	}
	return nil
}
