package merkle

import (
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// Chunk is one piece of a transaction payload together with its byte range.
// StartOffset is inclusive and EndOffset exclusive, so the chunk at index i
// covers [i*chunkSize, min((i+1)*chunkSize, len(payload))).
type Chunk struct {
	// DataHash is the SHA-256 digest of the chunk contents
	DataHash []byte

	// StartOffset is the position of the chunk's first byte in the payload
	StartOffset uint64

	// EndOffset is one past the position of the chunk's last byte
	EndOffset uint64
}

// ChunkTree is the binary tree committing a payload to its 32-byte root.
// Leaves hash chunk contents together with their end offsets and branches
// hash child pairs together with the split offset, so a proof pins down both
// the bytes of a chunk and its position.
type ChunkTree struct {
	// Chunks contains the payload pieces in offset order
	Chunks []Chunk

	// Root is the tree root carried in a transaction's data_root field;
	// empty for a zero-length payload
	Root types.Base64

	// proofs holds one data_path per chunk, in chunk order
	proofs []types.Base64
}

// ValidatedChunk is the byte range a successfully validated proof commits to.
type ValidatedChunk struct {
	// DataHash is the SHA-256 digest the proof pins the chunk contents to
	DataHash types.Base64

	// StartOffset is the first payload byte the proof covers
	StartOffset uint64

	// EndOffset is one past the last payload byte the proof covers
	EndOffset uint64
}

// node is one tree position during construction. Leaves have no children.
type node struct {
	id       []byte
	dataHash []byte
	note     uint64
	minRange uint64
	maxRange uint64
	left     *node
	right    *node
}
