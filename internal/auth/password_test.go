package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, salt, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	assert.True(t, VerifyPassword("hunter22", hash, salt))
	assert.False(t, VerifyPassword("hunter23", hash, salt))
	assert.False(t, VerifyPassword("", hash, salt))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	hash1, salt1, err := HashPassword("same-password")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPasswordBadEncoding(t *testing.T) {
	assert.False(t, VerifyPassword("pw", "not-hex", "also-not-hex"))
}
