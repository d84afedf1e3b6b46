package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIDSecret = "id-secret"
	testIssuer   = "https://accounts.google.com"
	testAudience = "samira-admin"
)

func signIDToken(t *testing.T, secret string, claims idTokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() idTokenClaims {
	return idTokenClaims{
		Email: "Owner@Samira.id",
		Name:  "Owner",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-123",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestTokenIdentityVerifier_Valid(t *testing.T) {
	v := NewTokenIdentityVerifier(testIDSecret, testIssuer, testAudience)

	identity, err := v.Verify(context.Background(), signIDToken(t, testIDSecret, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "uid-123", identity.UID)
	assert.Equal(t, "owner@samira.id", identity.Email)
	assert.Equal(t, "Owner", identity.Name)
}

func TestTokenIdentityVerifier_Rejects(t *testing.T) {
	v := NewTokenIdentityVerifier(testIDSecret, testIssuer, testAudience)
	unverified := false

	cases := map[string]struct {
		token   func() string
		wantErr error
	}{
		"empty": {func() string { return "" }, ErrInvalidIDToken},
		"wrong secret": {func() string { return signIDToken(t, "other", validClaims()) }, ErrInvalidIDToken},
		"wrong audience": {func() string {
			c := validClaims()
			c.Audience = jwt.ClaimStrings{"someone-else"}
			return signIDToken(t, testIDSecret, c)
		}, ErrInvalidIDToken},
		"wrong issuer": {func() string {
			c := validClaims()
			c.Issuer = "https://evil.example"
			return signIDToken(t, testIDSecret, c)
		}, ErrInvalidIDToken},
		"expired": {func() string {
			c := validClaims()
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			return signIDToken(t, testIDSecret, c)
		}, ErrInvalidIDToken},
		"no subject": {func() string {
			c := validClaims()
			c.Subject = ""
			return signIDToken(t, testIDSecret, c)
		}, ErrInvalidIDToken},
		"no email": {func() string {
			c := validClaims()
			c.Email = ""
			return signIDToken(t, testIDSecret, c)
		}, ErrMissingEmail},
		"unverified email": {func() string {
			c := validClaims()
			c.EmailVerified = &unverified
			return signIDToken(t, testIDSecret, c)
		}, ErrEmailNotVerified},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tc.token())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
