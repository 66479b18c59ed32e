package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("ana@example.com", RoleAdmin, testSecret, time.Hour, "pos-shift-app")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "pos-shift-app", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	expired, err := GenerateJWT("ana@example.com", RoleStaff, testSecret, -time.Minute, "pos-shift-app")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := GenerateJWT("ana@example.com", RoleStaff, testSecret, time.Hour, "pos-shift-app")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(valid, "some-other-secret-value")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
