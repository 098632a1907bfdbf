// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/access"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum length of a password on registration.
const MinPasswordLength = 8

var (
	ErrMissingToken       = errors.New("an authorization header of the form 'Bearer <token>' is required")
	ErrInvalidToken       = errors.New("the authorization token is invalid or has expired")
	ErrInvalidCredentials = errors.New("the e-mail address or password is incorrect")
	ErrPasswordTooShort   = fmt.Errorf("passwords must be at least %d characters long", MinPasswordLength)
)

// Claims are the claims carried in an access token.
type Claims struct {
	Role access.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) Issuer {
	return Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the subject. It returns the token and its expiry.
func (i Issuer) Issue(subject access.Subject, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Role: subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Parse verifies the token and returns the subject it was issued for.
func (i Issuer) Parse(token string) (access.Subject, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return access.Subject{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Subject{}, ErrInvalidToken
	}

	return access.Subject{ID: id, Role: claims.Role}, nil
}

// HashPassword returns the bcrypt hash for a password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
