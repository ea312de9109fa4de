package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Password1", hash)

	require.True(t, VerifyPassword(hash, "Password1"))
	require.False(t, VerifyPassword(hash, "Password2"))
	require.False(t, VerifyPassword("not-a-hash", "Password1"))
}
