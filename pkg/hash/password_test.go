package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4)

	digest, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1!", digest)

	require.True(t, hasher.Verify(digest, "Secret1!"))
	require.False(t, hasher.Verify(digest, "Secret2!"))
}

// Two digests of the same password differ because of the embedded salt.
func TestHashSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Secret1!")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, hasher.Verify(first, "Secret1!"))
	require.True(t, hasher.Verify(second, "Secret1!"))
}

func TestVerifyGarbageDigest(t *testing.T) {
	hasher := NewBcryptHasher(4)
	require.False(t, hasher.Verify("not-a-digest", "Secret1!"))
}

// Out-of-range costs fall back to the library default instead of
// failing at hash time.
func TestCostClamped(t *testing.T) {
	hasher := NewBcryptHasher(99)

	digest, err := hasher.Hash("Secret1!")
	require.NoError(t, err)
	require.True(t, hasher.Verify(digest, "Secret1!"))
}
