package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	passwords := []string{"pw1", "correct horse battery staple", "p@ssw0rd!"}

	for _, password := range passwords {
		hash, err := HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.NoError(t, ComparePassword(hash, password))
	}
}

func TestComparePassword_RejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.Error(t, ComparePassword(hash, "pw2"))
	assert.Error(t, ComparePassword(hash, ""))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
