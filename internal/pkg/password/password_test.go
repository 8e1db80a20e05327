package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwise/internal/pkg/password"
)

func Test_HashAndVerify_RoundTrip(t *testing.T) {
	hash, err := password.Hash("securepassword123")
	require.NoError(t, err)

	assert.NotEqual(t, "securepassword123", hash)
	assert.True(t, password.Verify("securepassword123", hash))
	assert.False(t, password.Verify("wrongpassword", hash))
}

func Test_ValidatePassword_EnforcesMinLength(t *testing.T) {
	assert.True(t, password.ValidatePassword("12345678"))
	assert.False(t, password.ValidatePassword("1234567"))
	assert.False(t, password.ValidatePassword(""))
}
