package lib

import (
	"net/http"
	"net/http/httptest"
	"storefront_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestParseToken_RoundTrip(t *testing.T) {
	tok, err := SignToken(structs.AuthClaims{
		Sub: "user-1", Email: "admin@example.com", Verified: true, Exp: time.Now().Add(time.Hour),
	}, testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.Verified)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := SignToken(structs.AuthClaims{Sub: "u", Email: "e", Exp: time.Now().Add(-time.Minute)}, testSecret)
	require.NoError(t, err)
	_, err = ParseToken(expired, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)

	valid, err := SignToken(structs.AuthClaims{Sub: "u", Email: "e", Exp: time.Now().Add(time.Minute)}, testSecret)
	require.NoError(t, err)
	_, err = ParseToken(valid, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractClaims_HeaderThenCookie(t *testing.T) {
	tok, err := SignToken(structs.AuthClaims{Sub: "u", Email: "e", Exp: time.Now().Add(time.Minute)}, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	_, err = ExtractClaims(r, "access_token", testSecret)
	assert.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "Bearer "+tok)
	claims, err := ExtractClaims(r, "access_token", testSecret)
	require.NoError(t, err)
	assert.False(t, claims.Verified)

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	_, err = ExtractClaims(r, "access_token", testSecret)
	assert.NoError(t, err)
}
