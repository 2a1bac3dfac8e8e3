package crypto

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SHA384 returns the SHA-384 digest of data.
func SHA384(data []byte) []byte {
	sum := sha512.Sum384(data)
	return sum[:]
}

// Address derives the wallet address for an owner modulus: the base64url
// encoding of its SHA-256 digest.
func Address(owner types.Base64) string {
	return types.Base64(SHA256(owner)).String()
}
