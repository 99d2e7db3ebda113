package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, CheckPassword("supersecret", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
}

func TestCheckPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.False(t, CheckPassword("wrongpassword", hash))
}
