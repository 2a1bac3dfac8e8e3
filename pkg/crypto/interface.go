package crypto

import (
	"context"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

// ISigningProvider abstracts the key backend used to sign and verify
// transactions. Implementations exist for in-memory RSA keys, AWS KMS held
// keys, and a keyless verifier for received transactions.
type ISigningProvider interface {
	// Sign produces an RSA-PSS signature over the SHA-256 digest of message
	Sign(ctx context.Context, message []byte) ([]byte, error)

	// Verify checks an RSA-PSS signature over message against the public key
	// carried in owner
	Verify(owner types.Base64, message []byte, signature []byte) error

	// Hash returns the SHA-256 digest of data
	Hash(data []byte) []byte

	// Owner returns the raw big-endian modulus of the backend's RSA public
	// key, the form transactions carry on the wire
	Owner() (types.Base64, error)

	// Address returns the wallet address derived from the owner bytes
	Address() (string, error)
}
