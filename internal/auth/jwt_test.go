package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{Issuer: "esencia-retro", Secret: "test-secret", AccessTTLMin: 60})
}

func TestSignAndParseAccess(t *testing.T) {
	m := testManager()

	token, exp, err := m.SignAccess("admin@esenciaretro.com", RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@esenciaretro.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "esencia-retro", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().SignAccess("admin@esenciaretro.com", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Issuer: "esencia-retro", Secret: "different", AccessTTLMin: 60})
	_, err = other.ParseAccess(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager(JWTConfig{Issuer: "esencia-retro", Secret: "test-secret", AccessTTLMin: -1})
	token, _, err := m.SignAccess("admin@esenciaretro.com", RoleAdmin)
	require.NoError(t, err)

	_, err = m.ParseAccess(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testManager().ParseAccess("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter2!"))
	assert.False(t, CheckPassword(hash, "hunter3!"))
}
