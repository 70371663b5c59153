package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost. bcrypt generates a
// fresh random salt on every call and embeds it in the output, so two hashes
// of the same password differ while both still verify.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash and a plain password. A wrong
// password yields (false, nil); a non-nil error is only returned when the
// stored hash itself is malformed (e.g. corrupted in the database). The
// comparison inside bcrypt is constant-time.
func VerifyPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
