package crypto

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestNewRSAProviderRequiresKey(t *testing.T) {
	_, err := NewRSAProvider(nil)
	assert.Error(t, err)
}

func TestRSAProviderSignVerify(t *testing.T) {
	provider, err := NewRSAProvider(newTestKey(t))
	require.NoError(t, err)

	message := []byte("canonical signature message")
	signature, err := provider.Sign(context.Background(), message)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	owner, err := provider.Owner()
	require.NoError(t, err)

	assert.NoError(t, provider.Verify(owner, message, signature))
	assert.NoError(t, VerifySignature(owner, message, signature))
}

func TestVerifyRejectsTampering(t *testing.T) {
	provider, err := NewRSAProvider(newTestKey(t))
	require.NoError(t, err)

	message := []byte("canonical signature message")
	signature, err := provider.Sign(context.Background(), message)
	require.NoError(t, err)

	owner, err := provider.Owner()
	require.NoError(t, err)

	t.Run("modified message", func(t *testing.T) {
		assert.Error(t, VerifySignature(owner, []byte("another message"), signature))
	})

	t.Run("flipped signature byte", func(t *testing.T) {
		tampered := append([]byte(nil), signature...)
		tampered[0] ^= 0x01
		assert.Error(t, VerifySignature(owner, message, tampered))
	})

	t.Run("wrong owner", func(t *testing.T) {
		otherOwner := types.Base64(newTestKey(t).PublicKey.N.Bytes())
		assert.Error(t, VerifySignature(otherOwner, message, signature))
	})
}

func TestVerifyAcceptsAnySaltLength(t *testing.T) {
	key := newTestKey(t)
	message := []byte("salted differently")
	digest := sha256.Sum256(message)

	// Maximum-length salt, as some signers produce.
	signature, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	require.NoError(t, err)

	owner := types.Base64(key.PublicKey.N.Bytes())
	assert.NoError(t, VerifySignature(owner, message, signature))
}

func TestRSAProviderOwnerAndAddress(t *testing.T) {
	key := newTestKey(t)
	provider, err := NewRSAProvider(key)
	require.NoError(t, err)

	owner, err := provider.Owner()
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey.N.Bytes(), []byte(owner))

	address, err := provider.Address()
	require.NoError(t, err)
	// SHA-256 digest renders as 43 unpadded base64url characters.
	assert.Len(t, address, 43)
	assert.Equal(t, Address(owner), address)
}

func TestRSAProviderHash(t *testing.T) {
	provider, err := NewRSAProvider(newTestKey(t))
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("data"))
	assert.Equal(t, digest[:], provider.Hash([]byte("data")))
}
