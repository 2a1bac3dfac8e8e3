package wallet

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/permadata-labs/arweave-go/pkg/crypto"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// DefaultKeySize is the modulus size in bits for newly generated wallets.
const DefaultKeySize = 4096

// MinKeySize is the smallest modulus accepted when generating a wallet.
const MinKeySize = 2048

// Wallet holds the RSA key pair behind a ledger address. Key files travel as
// RSA JWKs, the format wallet exports use.
type Wallet struct {
	PrivateKey *rsa.PrivateKey
}

// Generate creates a wallet with a fresh RSA key. A bits value of zero picks
// the default key size.
func Generate(bits int) (*Wallet, error) {
	if bits == 0 {
		bits = DefaultKeySize
	}
	if bits < MinKeySize {
		return nil, fmt.Errorf("wallet: key size must be at least %d bits, got %d", MinKeySize, bits)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("wallet: generating key: %w", err)
	}
	return &Wallet{PrivateKey: key}, nil
}

// FromJWK parses a wallet from RSA JWK bytes.
func FromJWK(data []byte) (*Wallet, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, fmt.Errorf("wallet: parsing JWK: %w", err)
	}

	var privateKey rsa.PrivateKey
	if err := jwk.Export(key, &privateKey); err != nil {
		return nil, fmt.Errorf("wallet: JWK does not hold an RSA private key: %w", err)
	}
	return &Wallet{PrivateKey: &privateKey}, nil
}

// Load reads a wallet key file from disk.
func Load(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: reading key file: %w", err)
	}
	return FromJWK(data)
}

// JWK serializes the wallet key as an RSA JWK.
func (w *Wallet) JWK() ([]byte, error) {
	key, err := jwk.Import(w.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("wallet: converting key to JWK: %w", err)
	}

	data, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: encoding JWK: %w", err)
	}
	return data, nil
}

// Save writes the wallet key file to disk, readable only by the owner.
func (w *Wallet) Save(path string) error {
	data, err := w.JWK()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("wallet: writing key file: %w", err)
	}
	return nil
}

// Owner returns the raw big-endian public modulus, the owner field of
// transactions signed with this wallet.
func (w *Wallet) Owner() types.Base64 {
	return w.PrivateKey.PublicKey.N.Bytes()
}

// Address returns the wallet address derived from the owner bytes.
func (w *Wallet) Address() string {
	return crypto.Address(w.Owner())
}
