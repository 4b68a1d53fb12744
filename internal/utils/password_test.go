package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password123!")
	require.NoError(t, err)
	require.NotEqual(t, "Password123!", hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("password123!", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_LongSecret(t *testing.T) {
	t.Parallel()

	// bcrypt only reads 72 bytes; the pre-hash keeps longer secrets distinct
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, CheckPassword(long, hash))
	// Without the pre-hash these two would collide at the 72-byte boundary
	assert.False(t, CheckPassword(strings.Repeat("a", 73), hash))
	assert.False(t, CheckPassword(strings.Repeat("a", 72), hash))
}

func TestHashPassword_BoundaryLength(t *testing.T) {
	t.Parallel()

	exact := strings.Repeat("b", 72)
	hash, err := HashPassword(exact)
	require.NoError(t, err)
	assert.True(t, CheckPassword(exact, hash))
	assert.False(t, CheckPassword(strings.Repeat("b", 71), hash))
}
