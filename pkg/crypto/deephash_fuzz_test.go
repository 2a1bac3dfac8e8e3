package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzDeepHashBlobDeterministic(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte(""))
	f.Add([]byte("2"))
	f.Add(make([]byte, 4096))

	f.Fuzz(func(t *testing.T, data []byte) {
		first := DeepHash(BlobItem(data))
		second := DeepHash(BlobItem(data))
		require.Equal(t, first, second)

		// Wrapping the same bytes in a list is a different tree.
		wrapped := DeepHash(ListItem(BlobItem(data)))
		require.NotEqual(t, first, wrapped)
	})
}
