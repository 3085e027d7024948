// Package auth mints and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Typed verification failures.
var (
	ErrMalformed         = errors.New("malformed token")
	ErrExpired           = errors.New("token expired")
	ErrSignatureMismatch = errors.New("token signature mismatch")
)

// Claims carries only the registered claims: sub, iat, exp and jti.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs HS256 tokens bound to a user id. Tokens are stateless: the
// server keeps no record of them, so logout needs no server-side work.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	grace  time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer that signs with secret, mints tokens valid for
// ttl, and accepts tokens up to grace past their expiry in Refresh.
func NewIssuer(secret []byte, ttl, grace time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, grace: grace, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue mints a token for userID expiring ttl from now.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	return i.sign(userID, now, now.Add(i.ttl))
}

// Verify returns the subject of a valid, unexpired token.
func (i *Issuer) Verify(token string) (string, error) {
	claims, err := i.parse(token, 0)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Refresh exchanges a token that verifies, or that expired less than the
// grace window ago, for a new token with the same subject. The new expiry is
// always strictly later than the presented one.
func (i *Issuer) Refresh(token string) (string, error) {
	claims, err := i.parse(token, i.grace)
	if err != nil {
		return "", err
	}

	now := i.now()
	exp := now.Add(i.ttl)
	if prev := claims.ExpiresAt.Time; !exp.After(prev) {
		exp = prev.Add(time.Second)
	}
	return i.sign(claims.Subject, now, exp)
}

func (i *Issuer) sign(userID string, iat, exp time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(i.secret)
}

func (i *Issuer) parse(token string, leeway time.Duration) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, mapParseError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureMismatch
	default:
		return ErrMalformed
	}
}
