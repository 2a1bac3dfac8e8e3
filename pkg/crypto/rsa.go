package crypto

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

// signOpts matches the network's signature scheme: RSA-PSS over a SHA-256
// message digest with a digest-length salt.
var signOpts = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthEqualsHash,
	Hash:       crypto.SHA256,
}

// verifyOpts accepts any salt length, as network verification does.
var verifyOpts = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA256,
}

// RSAProvider implements ISigningProvider with an in-memory RSA private key.
type RSAProvider struct {
	key *rsa.PrivateKey
}

var _ ISigningProvider = (*RSAProvider)(nil)

// NewRSAProvider wraps an RSA private key as a signing provider.
func NewRSAProvider(key *rsa.PrivateKey) (*RSAProvider, error) {
	if key == nil {
		return nil, fmt.Errorf("crypto: private key is required")
	}
	return &RSAProvider{key: key}, nil
}

// Sign produces an RSA-PSS signature over the SHA-256 digest of message
func (p *RSAProvider) Sign(_ context.Context, message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	signature, err := rsa.SignPSS(rand.Reader, p.key, crypto.SHA256, digest[:], signOpts)
	if err != nil {
		return nil, fmt.Errorf("crypto: pss signing failed: %w", err)
	}
	return signature, nil
}

// Verify checks an RSA-PSS signature over message against the public key
// carried in owner
func (p *RSAProvider) Verify(owner types.Base64, message []byte, signature []byte) error {
	return VerifySignature(owner, message, signature)
}

// Hash returns the SHA-256 digest of data
func (p *RSAProvider) Hash(data []byte) []byte {
	return SHA256(data)
}

// Owner returns the raw big-endian modulus of the signing key
func (p *RSAProvider) Owner() (types.Base64, error) {
	return types.Base64(p.key.PublicKey.N.Bytes()), nil
}

// Address returns the wallet address derived from the owner bytes
func (p *RSAProvider) Address() (string, error) {
	owner, err := p.Owner()
	if err != nil {
		return "", err
	}
	return Address(owner), nil
}
