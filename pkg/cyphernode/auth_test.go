package cyphernode

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func parseToken(t *testing.T, token string, secret []byte) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssueToken(t *testing.T) {
	secret := []byte(testSecret)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("payload", func(t *testing.T) {
		token, err := IssueToken(testClientID, secret, now)
		require.NoError(t, err)

		claims := parseToken(t, token, secret)
		require.Equal(t, testClientID, claims["id"])
		require.Equal(t, float64(now.UnixMilli()+3_600_000), claims["exp"])
		require.Len(t, claims, 2)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := IssueToken(testClientID, secret, now)
		require.NoError(t, err)

		_, err = jwt.Parse(token, func(*jwt.Token) (any, error) {
			return []byte("another secret"), nil
		}, jwt.WithoutClaimsValidation())
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("header", func(t *testing.T) {
		token, err := IssueToken(testClientID, secret, now)
		require.NoError(t, err)

		parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
		require.NoError(t, err)
		require.Equal(t, "HS256", parsed.Header["alg"])
		require.Equal(t, "JWT", parsed.Header["typ"])
	})

	t.Run("clock before epoch", func(t *testing.T) {
		_, err := IssueToken(testClientID, secret, time.Unix(-10, 0))
		require.ErrorIs(t, err, ErrClockBeforeEpoch)
		require.True(t, IsKind(err, KindAuth))
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := IssueToken(testClientID, nil, now)
		require.True(t, IsKind(err, KindAuth))
	})

	t.Run("fresh token per call", func(t *testing.T) {
		seen := make(chan capturedRequest, 2)
		client := newTestClient(t, capture(seen, `{"result":{"balance":0},"error":null}`))

		issued := []time.Time{now, now.Add(time.Minute)}
		client.now = func() time.Time {
			ts := issued[0]
			issued = issued[1:]
			return ts
		}

		for i := 0; i < 2; i++ {
			_, err := client.GetBalance(context.Background())
			require.NoError(t, err)
		}

		first, second := <-seen, <-seen
		for i, req := range []capturedRequest{first, second} {
			header := req.header.Get("Authorization")
			require.True(t, strings.HasPrefix(header, "Bearer "))
			claims := parseToken(t, strings.TrimPrefix(header, "Bearer "), secret)
			expected := now.Add(time.Duration(i) * time.Minute).UnixMilli()
			require.Equal(t, float64(expected+TokenLifetime.Milliseconds()), claims["exp"])
		}
	})
}
