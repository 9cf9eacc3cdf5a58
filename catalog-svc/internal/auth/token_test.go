package auth_test

import (
	"context"
	"testing"
	"time"

	"food-catalog/catalog-svc/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Minute)

	signed, err := tokens.Issue(*manager)
	require.NoError(t, err)

	principal, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, manager, principal)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Minute)

	otherKey, err := auth.NewTokens("other", time.Minute).Issue(*manager)
	require.NoError(t, err)

	expired, err := auth.NewTokens("secret", -time.Minute).Issue(*manager)
	require.NoError(t, err)

	noSubject, err := tokens.Issue(auth.Principal{Scopes: []string{auth.ScopeRead}})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong_key":  otherKey,
		"expired":    expired,
		"no_subject": noSubject,
		"alg_none":   none,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, auth.FromContext(ctx))

	ctx = auth.WithPrincipal(ctx, consultOnly)
	assert.Equal(t, consultOnly, auth.FromContext(ctx))
}
