package merkle

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChunkSize = 64

// randomPayload generates n random payload bytes for testing
func randomPayload(n int) []byte {
	data := make([]byte, n)
	_, _ = rand.Read(data) // Ignore error in test helper
	return data
}

// TestBuildChunkTree tests tree construction with various chunk counts
func TestBuildChunkTree(t *testing.T) {
	testCases := []struct {
		name        string
		payloadSize int
	}{
		{"Single chunk", testChunkSize},
		{"Single short chunk", 17},
		{"Two chunks", 2 * testChunkSize},
		{"Three chunks", 3 * testChunkSize},
		{"Three chunks with remainder", 2*testChunkSize + 5},
		{"Four chunks (power of 2)", 4 * testChunkSize},
		{"Seven chunks", 7 * testChunkSize},
		{"Eight chunks (power of 2)", 8 * testChunkSize},
		{"Fifteen chunks with remainder", 14*testChunkSize + 1},
		{"Sixteen chunks (power of 2)", 16 * testChunkSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := randomPayload(tc.payloadSize)
			tree, err := BuildChunkTree(payload, testChunkSize)
			require.NoError(t, err)
			require.NotNil(t, tree)

			expectedChunks := (tc.payloadSize + testChunkSize - 1) / testChunkSize
			require.Equal(t, expectedChunks, len(tree.Chunks))
			require.Len(t, []byte(tree.Root), 32)

			// Generate and validate the data_path for every chunk
			for i, chunk := range tree.Chunks {
				proof, err := tree.Proof(i)
				require.NoError(t, err)
				require.NotEmpty(t, proof)

				validated, err := ValidatePath(tree.Root, chunk.StartOffset, uint64(tc.payloadSize), proof)
				require.NoError(t, err, "proof for chunk %d should validate", i)
				require.Equal(t, chunk.StartOffset, validated.StartOffset)
				require.Equal(t, chunk.EndOffset, validated.EndOffset)
				require.Equal(t, chunk.DataHash, []byte(validated.DataHash))
			}
		})
	}
}

// TestBuildChunkTreeEmptyPayload tests that a zero-length payload yields an
// empty root and no chunks
func TestBuildChunkTreeEmptyPayload(t *testing.T) {
	tree, err := BuildChunkTree(nil, testChunkSize)
	require.NoError(t, err)
	require.Empty(t, tree.Chunks)
	require.True(t, tree.Root.Empty())

	_, err = tree.Proof(0)
	require.Error(t, err)
}

func TestSplitIntoChunks(t *testing.T) {
	testCases := []struct {
		name        string
		payloadSize int
		wantChunks  int
		lastLen     uint64
	}{
		{"exact multiple", 4 * testChunkSize, 4, testChunkSize},
		{"with remainder", 4*testChunkSize + 9, 5, 9},
		{"shorter than one chunk", 9, 1, 9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := randomPayload(tc.payloadSize)
			chunks, err := SplitIntoChunks(payload, testChunkSize)
			require.NoError(t, err)
			require.Len(t, chunks, tc.wantChunks)

			for i, chunk := range chunks {
				assert.Equal(t, uint64(i*testChunkSize), chunk.StartOffset)

				digest := sha256.Sum256(payload[chunk.StartOffset:chunk.EndOffset])
				assert.Equal(t, digest[:], chunk.DataHash)
			}

			last := chunks[len(chunks)-1]
			assert.Equal(t, tc.lastLen, last.EndOffset-last.StartOffset)
			assert.Equal(t, uint64(tc.payloadSize), last.EndOffset)
		})
	}

	t.Run("empty payload", func(t *testing.T) {
		chunks, err := SplitIntoChunks(nil, testChunkSize)
		require.NoError(t, err)
		require.Empty(t, chunks)
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		_, err := SplitIntoChunks(randomPayload(16), 0)
		require.Error(t, err)
	})
}

func TestChunkTreeDeterministic(t *testing.T) {
	payload := randomPayload(5 * testChunkSize)

	first, err := BuildChunkTree(payload, testChunkSize)
	require.NoError(t, err)
	second, err := BuildChunkTree(payload, testChunkSize)
	require.NoError(t, err)
	assert.Equal(t, first.Root, second.Root)

	// A single changed payload byte moves the root.
	payload[3*testChunkSize] ^= 0xff
	third, err := BuildChunkTree(payload, testChunkSize)
	require.NoError(t, err)
	assert.NotEqual(t, first.Root, third.Root)
}

func TestValidatePathRejectsTampering(t *testing.T) {
	payloadSize := 4 * testChunkSize
	payload := randomPayload(payloadSize)
	tree, err := BuildChunkTree(payload, testChunkSize)
	require.NoError(t, err)

	proof, err := tree.Proof(1)
	require.NoError(t, err)
	dest := tree.Chunks[1].StartOffset

	t.Run("valid proof passes", func(t *testing.T) {
		_, err := ValidatePath(tree.Root, dest, uint64(payloadSize), proof)
		require.NoError(t, err)
	})

	t.Run("flipped proof byte", func(t *testing.T) {
		tampered := append([]byte(nil), proof...)
		tampered[len(tampered)-1] ^= 0x01
		_, err := ValidatePath(tree.Root, dest, uint64(payloadSize), tampered)
		require.Error(t, err)
	})

	t.Run("wrong root", func(t *testing.T) {
		wrongRoot := append([]byte(nil), tree.Root...)
		wrongRoot[0] ^= 0x01
		_, err := ValidatePath(wrongRoot, dest, uint64(payloadSize), proof)
		require.Error(t, err)
	})

	t.Run("proof for a different destination", func(t *testing.T) {
		_, err := ValidatePath(tree.Root, tree.Chunks[3].StartOffset, uint64(payloadSize), proof)
		require.Error(t, err)
	})

	t.Run("truncated proof", func(t *testing.T) {
		_, err := ValidatePath(tree.Root, dest, uint64(payloadSize), proof[:len(proof)-8])
		require.Error(t, err)
	})
}

func TestValidatePathBounds(t *testing.T) {
	payload := randomPayload(2 * testChunkSize)
	tree, err := BuildChunkTree(payload, testChunkSize)
	require.NoError(t, err)
	proof, err := tree.Proof(0)
	require.NoError(t, err)

	_, err = ValidatePath(tree.Root, uint64(len(payload)), uint64(len(payload)), proof)
	assert.Error(t, err, "destination at payload size is out of range")

	_, err = ValidatePath(tree.Root, 0, 0, proof)
	assert.Error(t, err, "empty payload has nothing to validate")
}

func TestProofIndexOutOfBounds(t *testing.T) {
	tree, err := BuildChunkTree(randomPayload(3*testChunkSize), testChunkSize)
	require.NoError(t, err)

	_, err = tree.Proof(-1)
	assert.Error(t, err)
	_, err = tree.Proof(3)
	assert.Error(t, err)
}
