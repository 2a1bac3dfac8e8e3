package tx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/permadata-labs/arweave-go/pkg/crypto"
)

// Signer signs and verifies transactions through a signing provider. The
// provider decides where the key lives; the Signer owns the transaction
// semantics: what gets hashed, what the id is, and which fields signing may
// touch.
type Signer struct {
	provider crypto.ISigningProvider
}

// NewSigner wraps a signing provider.
func NewSigner(provider crypto.ISigningProvider) (*Signer, error) {
	if provider == nil {
		return nil, fmt.Errorf("tx: signing provider is required")
	}
	return &Signer{provider: provider}, nil
}

// SignTransaction stamps the provider's owner onto the transaction, signs
// the canonical signature data and sets the id to the SHA-256 digest of the
// signature bytes. Nothing else on the transaction is touched. A
// transaction that already carries a signature is rejected with
// ErrAlreadySigned; call ClearSignature first to re-sign.
func (s *Signer) SignTransaction(ctx context.Context, t *Transaction) error {
	if t.IsSigned() {
		return ErrAlreadySigned
	}

	owner, err := s.provider.Owner()
	if err != nil {
		return fmt.Errorf("tx: resolving owner: %w", err)
	}
	t.Owner = owner

	message, err := t.SignatureData()
	if err != nil {
		return err
	}

	signature, err := s.provider.Sign(ctx, message)
	if err != nil {
		return fmt.Errorf("tx: signing: %w", err)
	}

	t.Signature = signature
	t.ID = s.provider.Hash(signature)
	return nil
}

// VerifyTransaction checks that the signature verifies against the owner
// and content and that the id is the SHA-256 digest of the signature. An
// unsigned transaction fails with ErrUnsignedTransaction before any
// cryptography runs; any mismatch fails with ErrInvalidSignature.
func (s *Signer) VerifyTransaction(t *Transaction) error {
	if !t.IsSigned() {
		return ErrUnsignedTransaction
	}

	message, err := t.SignatureData()
	if err != nil {
		return err
	}

	if err := s.provider.Verify(t.Owner, message, t.Signature); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if !bytes.Equal(t.ID, crypto.SHA256(t.Signature)) {
		return fmt.Errorf("%w: id does not match signature digest", ErrInvalidSignature)
	}
	return nil
}
