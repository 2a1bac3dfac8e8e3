package crypto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadata-labs/arweave-go/pkg/types"
)

func TestVerifierHasNoKeyMaterial(t *testing.T) {
	verifier := NewVerifier()

	_, err := verifier.Sign(context.Background(), []byte("message"))
	assert.ErrorIs(t, err, ErrKeyUnavailable)

	_, err = verifier.Owner()
	assert.ErrorIs(t, err, ErrKeyUnavailable)

	_, err = verifier.Address()
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestVerifierVerifies(t *testing.T) {
	provider, err := NewRSAProvider(newTestKey(t))
	require.NoError(t, err)

	message := []byte("signed elsewhere")
	signature, err := provider.Sign(context.Background(), message)
	require.NoError(t, err)
	owner, err := provider.Owner()
	require.NoError(t, err)

	verifier := NewVerifier()
	assert.NoError(t, verifier.Verify(owner, message, signature))
	assert.Error(t, verifier.Verify(owner, []byte("different"), signature))
}

func TestOwnerPublicKey(t *testing.T) {
	key := newTestKey(t)
	owner := types.Base64(key.PublicKey.N.Bytes())

	pub, err := OwnerPublicKey(owner)
	require.NoError(t, err)
	assert.Zero(t, pub.N.Cmp(key.PublicKey.N))
	assert.Equal(t, 65537, pub.E)
}

func TestOwnerPublicKeyRejectsEmptyOwner(t *testing.T) {
	_, err := OwnerPublicKey(nil)
	assert.Error(t, err)
}
