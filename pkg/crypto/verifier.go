package crypto

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

// Verifier implements ISigningProvider without any private key material, for
// checking signatures on received transactions. Sign, Owner and Address
// report ErrKeyUnavailable.
type Verifier struct{}

var _ ISigningProvider = (*Verifier)(nil)

// NewVerifier returns a keyless provider.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Sign produces an RSA-PSS signature over the SHA-256 digest of message
func (v *Verifier) Sign(_ context.Context, _ []byte) ([]byte, error) {
	return nil, ErrKeyUnavailable
}

// Verify checks an RSA-PSS signature over message against the public key
// carried in owner
func (v *Verifier) Verify(owner types.Base64, message []byte, signature []byte) error {
	return VerifySignature(owner, message, signature)
}

// Hash returns the SHA-256 digest of data
func (v *Verifier) Hash(data []byte) []byte {
	return SHA256(data)
}

// Owner returns the raw big-endian modulus of the signing key
func (v *Verifier) Owner() (types.Base64, error) {
	return nil, ErrKeyUnavailable
}

// Address returns the wallet address derived from the owner bytes
func (v *Verifier) Address() (string, error) {
	return "", ErrKeyUnavailable
}

// OwnerPublicKey rebuilds the RSA public key described by a transaction's
// owner field. The owner bytes are the raw big-endian modulus; the public
// exponent is fixed at 65537.
func OwnerPublicKey(owner types.Base64) (*rsa.PublicKey, error) {
	if owner.Empty() {
		return nil, fmt.Errorf("crypto: owner is empty")
	}

	doc := fmt.Sprintf(`{"kty":"RSA","e":"AQAB","n":%q}`, owner.String())
	key, err := jwk.ParseKey([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("crypto: owner is not a valid RSA modulus: %w", err)
	}

	var pub rsa.PublicKey
	if err := jwk.Export(key, &pub); err != nil {
		return nil, fmt.Errorf("crypto: failed to export owner key: %w", err)
	}
	return &pub, nil
}

// VerifySignature checks an RSA-PSS signature over message against the
// public key carried in owner.
func VerifySignature(owner types.Base64, message []byte, signature []byte) error {
	pub, err := OwnerPublicKey(owner)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(message)
	if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], signature, verifyOpts); err != nil {
		return fmt.Errorf("crypto: pss verification failed: %w", err)
	}
	return nil
}
