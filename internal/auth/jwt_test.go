// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, 5*time.Minute)

	token, err := m.GenerateToken("u1", "ops@example.com", "Ops User", "operator", []string{"inventory:write"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, []string{"inventory:write"}, claims.Permissions)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(testSecret, 5*time.Minute)
	m.now = func() time.Time { return time.Now().Add(-10 * time.Minute) }

	token, err := m.GenerateToken("u1", "a@b.c", "A", "viewer", nil)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	m := NewJWTManager(testSecret, 5*time.Minute)
	token, err := m.GenerateToken("u1", "a@b.c", "A", "viewer", nil)
	require.NoError(t, err)

	other := NewJWTManager("another-secret-that-is-32-chars!", 5*time.Minute)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	m := NewJWTManager(testSecret, 5*time.Minute)

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}
