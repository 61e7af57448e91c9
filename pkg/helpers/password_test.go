package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	for _, plain := range []string{"Abcdef12", "correct horse battery staple", "päßwörd"} {
		hash, err := HashPassword(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash, "digest must differ from plaintext")
		assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt digest is self-describing")
		assert.True(t, CheckPassword(hash, plain))
		assert.False(t, CheckPassword(hash, plain+"x"))
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	for _, plain := range []string{"", "   ", "\t\n"} {
		_, err := HashPassword(plain)
		assert.ErrorIs(t, err, ErrEmptyPassword)
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("Abcdef12")
	require.NoError(t, err)
	h2, err := HashPassword("Abcdef12")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "two hashes of the same password must use different salts")
}

func TestCheckPasswordNeverPanics(t *testing.T) {
	// Malformed digests and empty input resolve to false, not an error.
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "Abcdef12"))
	assert.False(t, CheckPassword("", "Abcdef12"))
	assert.False(t, CheckPassword("$2a$xx$garbage", "Abcdef12"))

	hash, err := HashPassword("Abcdef12")
	require.NoError(t, err)
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword(hash, "   "))
}
