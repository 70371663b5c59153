package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Handlers must report all of them to the client
// as the same generic unauthorized response; the distinction exists for
// internal diagnostics only, so callers cannot probe whether a token is
// expired, forged or garbage.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are self-contained: nothing about them is persisted
// server-side, and they stay valid until Exp regardless of what happens
// after issuance. Rotating the signing secret invalidates all of them.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The JWT carries
// the subject (sub = user ID), expiration (exp = now + ttl) and issued-at
// (iat) claims.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token and returns
// the user ID from its subject claim. Verification is pure computation over
// the token and the secret; it performs no I/O.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HS256 tokens are ever issued; reject anything else before
		// the signature check.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	// JWT numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrTokenMalformed
	}
	return uint64(sub), nil
}
