package auth

import (
	"testing"

	"speakit/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_CheckRejectsSentinelValue(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	// The stored value for social-only accounts is not a bcrypt digest,
	// so any password comparison against it must fail.
	assert.False(t, hasher.Check("SOCIAL_LOGIN", "SOCIAL_LOGIN"))
	assert.False(t, hasher.Check("anything", "SOCIAL_LOGIN"))
}
