package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"samiratravel/models"
)

var (
	// ErrInvalidIDToken is returned when the sign-in token fails verification.
	ErrInvalidIDToken = errors.New("invalid identity token")
	// ErrMissingEmail is returned when a verified identity carries no email.
	ErrMissingEmail = errors.New("identity has no email")
	// ErrEmailNotVerified is returned when the provider flags the email as unverified.
	ErrEmailNotVerified = errors.New("identity email is not verified")
)

// IdentityVerifier turns a third-party sign-in token into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (models.Identity, error)
}

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIdentityVerifier verifies HS256-signed ID tokens issued by the sign-in provider.
type TokenIdentityVerifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenIdentityVerifier creates a verifier. Empty issuer or audience skips that check.
func NewTokenIdentityVerifier(secret, issuer, audience string) *TokenIdentityVerifier {
	return &TokenIdentityVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

func (v *TokenIdentityVerifier) Verify(ctx context.Context, idToken string) (models.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return models.Identity{}, ErrInvalidIDToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &idTokenClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidIDToken)
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return models.Identity{}, ErrMissingEmail
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return models.Identity{}, ErrEmailNotVerified
	}

	return models.Identity{UID: claims.Subject, Email: email, Name: claims.Name}, nil
}
