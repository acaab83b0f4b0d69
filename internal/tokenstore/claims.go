package tokenstore

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// IsWellFormed reports whether token has the shape of a JWT: three
// dot-separated segments.
func IsWellFormed(token string) bool {
	return strings.Count(token, ".") >= 2
}

// IsExpired judges a bearer token's liveness from its own unverified claims.
// The issuing service is trusted out-of-band and this client holds no
// verification key, so the signature is never checked.
//
// The policy fails closed: empty, malformed, or undecodable tokens are
// expired. A decodable token without an expiry claim is permanent.
func IsExpired(token string) bool {
	if token == "" {
		return true
	}
	if !IsWellFormed(token) {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		// No expiry claim means a permanent token.
		return false
	}

	return !timeNow().Before(exp.Time)
}

// TokenExpiry extracts the expiry claim as epoch seconds, or nil when the
// token has no expiry or cannot be decoded. Computed once at save time and
// recorded beside the ciphertext.
func TokenExpiry(token string) *int64 {
	if !IsWellFormed(token) {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	ts := exp.Unix()
	return &ts
}
