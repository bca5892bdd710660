package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(SecretSize)
	require.NoError(t, err)
	require.Len(t, a, SecretSize)

	b, err := GenerateSecret(SecretSize)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	for _, size := range []int{0, -1} {
		_, err := GenerateSecret(size)
		require.Error(t, err)
	}
}
