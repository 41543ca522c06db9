package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Passw0rd!", hash)

	// Hashing is salted, so two hashes of the same input differ
	hash2, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestBcryptVerifier_Compare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)

	assert.NoError(t, verifier.Compare(hash, "Passw0rd!"))
	assert.Error(t, verifier.Compare(hash, "WrongPass!"))
	assert.Error(t, verifier.Compare("not-a-hash", "Passw0rd!"))
}
