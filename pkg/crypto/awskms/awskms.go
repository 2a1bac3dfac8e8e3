package awskms

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/permadata-labs/arweave-go/pkg/crypto"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// KMSProvider implements crypto.ISigningProvider with a non-extractable RSA
// key held in AWS KMS. The key must be an RSA sign/verify key; signing uses
// the RSASSA_PSS_SHA_256 algorithm, which matches the network's signature
// scheme.
type KMSProvider struct {
	logger    *zap.Logger
	kmsClient *kms.Client
	keyID     string
	owner     types.Base64
}

var _ crypto.ISigningProvider = (*KMSProvider)(nil)

// NewKMSProvider fetches the key's public half and wraps the KMS key as a
// signing provider.
func NewKMSProvider(ctx context.Context, awsCfg aws.Config, keyID string, logger *zap.Logger) (*KMSProvider, error) {
	if keyID == "" {
		return nil, fmt.Errorf("awskms: key id is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := &KMSProvider{
		logger:    logger,
		kmsClient: kms.NewFromConfig(awsCfg),
		keyID:     keyID,
	}

	owner, err := provider.fetchOwner(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load public key for key %s", keyID)
	}
	provider.owner = owner

	logger.Sugar().Debugw("Initialized KMS signing provider",
		"key_id", keyID,
		"owner_bytes", len(owner),
	)
	return provider, nil
}

// Sign produces an RSA-PSS signature over the SHA-256 digest of message
func (p *KMSProvider) Sign(ctx context.Context, message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	signInput := &kms.SignInput{
		KeyId:            aws.String(p.keyID),
		Message:          digest[:],
		SigningAlgorithm: kmstypes.SigningAlgorithmSpecRsassaPssSha256,
		MessageType:      kmstypes.MessageTypeDigest,
	}

	signOutput, err := p.kmsClient.Sign(ctx, signInput)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign with key %s", p.keyID)
	}

	return signOutput.Signature, nil
}

// Verify checks an RSA-PSS signature over message against the public key
// carried in owner
func (p *KMSProvider) Verify(owner types.Base64, message []byte, signature []byte) error {
	return crypto.VerifySignature(owner, message, signature)
}

// Hash returns the SHA-256 digest of data
func (p *KMSProvider) Hash(data []byte) []byte {
	return crypto.SHA256(data)
}

// Owner returns the raw big-endian modulus of the signing key
func (p *KMSProvider) Owner() (types.Base64, error) {
	return p.owner, nil
}

// Address returns the wallet address derived from the owner bytes
func (p *KMSProvider) Address() (string, error) {
	return crypto.Address(p.owner), nil
}

// fetchOwner retrieves the public key from KMS and extracts the modulus.
func (p *KMSProvider) fetchOwner(ctx context.Context) (types.Base64, error) {
	input := &kms.GetPublicKeyInput{
		KeyId: aws.String(p.keyID),
	}

	result, err := p.kmsClient.GetPublicKey(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get public key")
	}

	pub, err := parseRSAPublicKey(result.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse public key")
	}

	return types.Base64(pub.N.Bytes()), nil
}

// parseRSAPublicKey parses the DER-encoded public key returned by KMS.
func parseRSAPublicKey(derBytes []byte) (*rsa.PublicKey, error) {
	parsed, err := x509.ParsePKIXPublicKey(derBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ASN.1 public key: %w", err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key %T is not an RSA public key", parsed)
	}
	return pub, nil
}
