package merkle

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

const (
	hashSize = 32
	noteSize = 32
)

// SplitIntoChunks cuts a payload into fixed-size pieces and hashes each one.
// The final chunk may be shorter; a zero-length payload yields no chunks.
func SplitIntoChunks(data []byte, chunkSize int) ([]Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("merkle: chunk size must be positive, got %d", chunkSize)
	}
	if len(data) == 0 {
		return nil, nil
	}

	chunks := make([]Chunk, 0, (len(data)+chunkSize-1)/chunkSize)
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		digest := sha256.Sum256(data[start:end])
		chunks = append(chunks, Chunk{
			DataHash:    digest[:],
			StartOffset: uint64(start),
			EndOffset:   uint64(end),
		})
	}
	return chunks, nil
}

// BuildChunkTree splits a payload and builds the tree bottom-up. When a
// layer has an odd node count the last node is promoted unchanged, never
// duplicated. A zero-length payload produces a tree with an empty root.
func BuildChunkTree(data []byte, chunkSize int) (*ChunkTree, error) {
	chunks, err := SplitIntoChunks(data, chunkSize)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &ChunkTree{}, nil
	}

	leaves := make([]*node, len(chunks))
	for i, chunk := range chunks {
		leaves[i] = &node{
			id:       hashNodes(chunk.DataHash, note(chunk.EndOffset)),
			dataHash: chunk.DataHash,
			note:     chunk.EndOffset,
			minRange: chunk.StartOffset,
			maxRange: chunk.EndOffset,
		}
	}

	root := buildLayers(leaves)

	tree := &ChunkTree{
		Chunks: chunks,
		Root:   types.Base64(root.id),
	}
	tree.proofs = make([]types.Base64, 0, len(chunks))
	collectProofs(root, nil, &tree.proofs)

	if len(tree.proofs) != len(chunks) {
		return nil, fmt.Errorf("merkle: built %d proofs for %d chunks", len(tree.proofs), len(chunks))
	}
	return tree, nil
}

// Proof returns the data_path for the chunk at the given index: the
// root-to-leaf concatenation of branch triples (left id, right id, split
// note) followed by the leaf pair (data hash, end-offset note).
func (t *ChunkTree) Proof(chunkIndex int) (types.Base64, error) {
	if chunkIndex < 0 || chunkIndex >= len(t.proofs) {
		return nil, fmt.Errorf("merkle: chunk index %d out of bounds (tree has %d chunks)", chunkIndex, len(t.proofs))
	}
	return t.proofs[chunkIndex], nil
}

// ValidatePath walks a data_path from the root down to a leaf and reports
// the byte range it commits to. It fails when any node hash disagrees with
// the path contents, which is how a tampered chunk or proof surfaces.
// dest is the payload byte position the path is being checked for and
// rightBound is the payload size.
func ValidatePath(root types.Base64, dest, rightBound uint64, path []byte) (*ValidatedChunk, error) {
	if rightBound == 0 {
		return nil, fmt.Errorf("merkle: cannot validate against an empty payload")
	}
	if dest >= rightBound {
		return nil, fmt.Errorf("merkle: destination %d outside payload of %d bytes", dest, rightBound)
	}

	expected := []byte(root)
	leftBound := uint64(0)

	for {
		if len(path) == hashSize+noteSize {
			dataHash := path[:hashSize]
			noteBuf := path[hashSize:]
			endOffset, err := noteValue(noteBuf)
			if err != nil {
				return nil, err
			}
			if !bytes.Equal(hashNodes(dataHash, noteBuf), expected) {
				return nil, fmt.Errorf("merkle: leaf hash mismatch")
			}
			if endOffset <= leftBound || endOffset > rightBound {
				return nil, fmt.Errorf("merkle: leaf offset %d outside bounds (%d, %d]", endOffset, leftBound, rightBound)
			}
			return &ValidatedChunk{
				DataHash:    types.Base64(dataHash),
				StartOffset: leftBound,
				EndOffset:   endOffset,
			}, nil
		}

		if len(path) < 2*hashSize+noteSize {
			return nil, fmt.Errorf("merkle: truncated proof of %d bytes", len(path))
		}

		left := path[:hashSize]
		right := path[hashSize : 2*hashSize]
		noteBuf := path[2*hashSize : 2*hashSize+noteSize]
		splitOffset, err := noteValue(noteBuf)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(hashNodes(left, right, noteBuf), expected) {
			return nil, fmt.Errorf("merkle: branch hash mismatch")
		}

		if dest < splitOffset {
			expected = left
			if splitOffset < rightBound {
				rightBound = splitOffset
			}
		} else {
			expected = right
			if splitOffset > leftBound {
				leftBound = splitOffset
			}
		}
		path = path[2*hashSize+noteSize:]
	}
}

// buildLayers folds leaf nodes pairwise into branches until one root remains.
func buildLayers(nodes []*node) *node {
	for len(nodes) > 1 {
		next := make([]*node, 0, (len(nodes)+1)/2)

		for i := 0; i < len(nodes); i += 2 {
			if i+1 >= len(nodes) {
				// Odd node out is promoted to the next layer as-is.
				next = append(next, nodes[i])
				continue
			}

			left, right := nodes[i], nodes[i+1]
			next = append(next, &node{
				id:       hashNodes(left.id, right.id, note(left.maxRange)),
				note:     left.maxRange,
				minRange: left.minRange,
				maxRange: right.maxRange,
				left:     left,
				right:    right,
			})
		}
		nodes = next
	}
	return nodes[0]
}

// collectProofs walks the tree depth-first, extending the accumulated path
// prefix at each branch, and emits one full proof per leaf in offset order.
func collectProofs(n *node, prefix []byte, out *[]types.Base64) {
	if n.left == nil && n.right == nil {
		proof := make([]byte, 0, len(prefix)+hashSize+noteSize)
		proof = append(proof, prefix...)
		proof = append(proof, n.dataHash...)
		proof = append(proof, note(n.note)...)
		*out = append(*out, types.Base64(proof))
		return
	}

	branchPrefix := make([]byte, 0, len(prefix)+2*hashSize+noteSize)
	branchPrefix = append(branchPrefix, prefix...)
	branchPrefix = append(branchPrefix, n.left.id...)
	branchPrefix = append(branchPrefix, n.right.id...)
	branchPrefix = append(branchPrefix, note(n.note)...)

	collectProofs(n.left, branchPrefix, out)
	collectProofs(n.right, branchPrefix, out)
}

// hashNodes computes SHA256(SHA256(part1) || SHA256(part2) || ...), the
// node hashing rule shared by leaves and branches.
func hashNodes(parts ...[]byte) []byte {
	outer := sha256.New()
	for _, part := range parts {
		inner := sha256.Sum256(part)
		outer.Write(inner[:])
	}
	return outer.Sum(nil)
}

// note renders an offset as a 32-byte big-endian buffer.
func note(value uint64) []byte {
	buf := make([]byte, noteSize)
	binary.BigEndian.PutUint64(buf[noteSize-8:], value)
	return buf
}

// noteValue parses a 32-byte offset note, rejecting values beyond uint64.
func noteValue(buf []byte) (uint64, error) {
	for _, b := range buf[:noteSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("merkle: offset note exceeds uint64 range")
		}
	}
	return binary.BigEndian.Uint64(buf[noteSize-8:]), nil
}
