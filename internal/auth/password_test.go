package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(Config{BcryptCost: bcrypt.MinCost})

	t.Run("round trip", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)

		assert.True(t, hasher.Compare("s3cret-password", hash))
		assert.False(t, hasher.Compare("wrong-password", hash))
	})

	t.Run("hashes differ per call", func(t *testing.T) {
		first, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)
		second, err := hasher.Hash("s3cret-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := hasher.Hash("12345")
		assert.ErrorIs(t, err, ErrWeakPassword)

		_, err = hasher.Hash("")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	// out-of-range costs fall back to the bcrypt default instead of
	// failing at hash time
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		hasher := NewBcryptHasher(Config{BcryptCost: cost})
		assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
	}

	hasher := NewBcryptHasher(Config{BcryptCost: bcrypt.MinCost})
	assert.Equal(t, bcrypt.MinCost, hasher.cost)
}

func TestBcryptHasher_CompareGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher(Config{BcryptCost: bcrypt.MinCost})

	assert.False(t, hasher.Compare("anything", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Compare("anything", ""))
}
