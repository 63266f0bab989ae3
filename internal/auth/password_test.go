package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("pw1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "pw1234")

	assert.NoError(t, ComparePassword(hash, "pw1234"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("pw1234", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("pw1234", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
