package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateSessionToken("sess-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", claims.SessionID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateSessionToken("sess-42")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateSessionToken("sess-42")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = manager.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateRejectsMissingSessionID(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateSessionToken("")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}
