package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := m.Generate(userID, "maria")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
}

func TestValidateWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.Generate(uuid.New(), "maria")
	require.NoError(t, err)

	other := NewManager("other-secret", time.Hour)
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.Generate(uuid.New(), "maria")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Validate("not-a-token")
	assert.Error(t, err)
}
