package tx

import (
	"fmt"
	"strconv"

	"github.com/permadata-labs/arweave-go/pkg/crypto"
	"github.com/permadata-labs/arweave-go/pkg/merkle"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// Transaction formats understood by the network. FormatV2 commits to its
// payload through a chunk tree root; FormatV1 carries the payload directly
// in the signature material.
const (
	FormatV1 = 1
	FormatV2 = 2
)

// Transaction is the wire representation of a ledger transaction. Byte
// fields serialize as unpadded base64url strings and numeric fields as
// decimal strings, matching the gateway's JSON format. Field order mirrors
// the wire layout.
type Transaction struct {
	Format    int          `json:"format"`
	ID        types.Base64 `json:"id"`
	LastTx    types.Base64 `json:"last_tx"`
	Owner     types.Base64 `json:"owner"`
	Tags      []types.Tag  `json:"tags"`
	Target    types.Base64 `json:"target"`
	Quantity  string       `json:"quantity"`
	Data      types.Base64 `json:"data"`
	DataSize  string       `json:"data_size"`
	DataRoot  types.Base64 `json:"data_root"`
	Reward    string       `json:"reward"`
	Signature types.Base64 `json:"signature"`
}

// New returns an empty format-2 transaction with numeric fields zeroed the
// way the network expects.
func New() *Transaction {
	return &Transaction{
		Format:   FormatV2,
		Tags:     []types.Tag{},
		Quantity: "0",
		DataSize: "0",
		Reward:   "0",
	}
}

// AddTag appends a name/value tag.
func (t *Transaction) AddTag(name, value string) {
	t.Tags = append(t.Tags, types.NewTag(name, value))
}

// SetTarget decodes a wallet address into the target field.
func (t *Transaction) SetTarget(address string) error {
	if address == "" {
		t.Target = nil
		return nil
	}
	target, err := types.DecodeBase64(address)
	if err != nil {
		return fmt.Errorf("%w: target address: %s", ErrEncoding, err)
	}
	t.Target = target
	return nil
}

// SetQuantity sets the transfer amount in winston.
func (t *Transaction) SetQuantity(winston uint64) {
	t.Quantity = strconv.FormatUint(winston, 10)
}

// SetReward sets the fee in winston.
func (t *Transaction) SetReward(winston uint64) {
	t.Reward = strconv.FormatUint(winston, 10)
}

// PrepareData attaches a payload: it stores the bytes, records their length
// and, for format-2 transactions, commits to them through the chunk tree
// root. An empty payload leaves the root empty.
func (t *Transaction) PrepareData(data []byte, chunkSize int) error {
	t.Data = data
	t.DataSize = strconv.Itoa(len(data))

	if t.Format == FormatV1 {
		return nil
	}

	tree, err := merkle.BuildChunkTree(data, chunkSize)
	if err != nil {
		return fmt.Errorf("tx: building chunk tree: %w", err)
	}
	t.DataRoot = tree.Root
	return nil
}

// ChunkData rebuilds the chunk tree for the attached payload. The build is
// deterministic, so the result matches the data_root recorded by
// PrepareData for the same bytes.
func (t *Transaction) ChunkData(chunkSize int) (*merkle.ChunkTree, error) {
	return merkle.BuildChunkTree(t.Data, chunkSize)
}

// IsSigned reports whether the transaction carries a signature.
func (t *Transaction) IsSigned() bool {
	return !t.Signature.Empty()
}

// Stripped returns a copy of the transaction without its payload bytes, the
// form posted as a header ahead of chunk uploads. The data_root still commits
// to the payload.
func (t *Transaction) Stripped() *Transaction {
	header := *t
	header.Data = types.Base64{}
	return &header
}

// ClearSignature removes the signature, id and owner so the transaction can
// be re-signed, typically after fetching a fresh anchor.
func (t *Transaction) ClearSignature() {
	t.Signature = nil
	t.ID = nil
	t.Owner = nil
}

// SignatureData assembles the canonical byte message that is signed and
// verified. For format 2 this is the canonical digest of the field list
// (format, owner, target, quantity, reward, last_tx, tags as name/value
// pairs, data_size, data_root); the field order is a protocol constant.
// Format 1 concatenates owner, target, data, quantity, reward, last_tx and
// the tag bytes. Unknown formats fail with ErrEncoding.
func (t *Transaction) SignatureData() ([]byte, error) {
	switch t.Format {
	case FormatV1:
		var message []byte
		message = append(message, t.Owner...)
		message = append(message, t.Target...)
		message = append(message, t.Data...)
		message = append(message, []byte(t.Quantity)...)
		message = append(message, []byte(t.Reward)...)
		message = append(message, t.LastTx...)
		for _, tag := range t.Tags {
			message = append(message, tag.Name...)
			message = append(message, tag.Value...)
		}
		return message, nil

	case FormatV2:
		tagItems := make([]crypto.DeepHashItem, len(t.Tags))
		for i, tag := range t.Tags {
			tagItems[i] = crypto.ListItem(
				crypto.BlobItem(tag.Name),
				crypto.BlobItem(tag.Value),
			)
		}

		digest := crypto.DeepHash(crypto.ListItem(
			crypto.BlobItem([]byte(strconv.Itoa(t.Format))),
			crypto.BlobItem(t.Owner),
			crypto.BlobItem(t.Target),
			crypto.BlobItem([]byte(t.Quantity)),
			crypto.BlobItem([]byte(t.Reward)),
			crypto.BlobItem(t.LastTx),
			crypto.ListItem(tagItems...),
			crypto.BlobItem([]byte(t.DataSize)),
			crypto.BlobItem(t.DataRoot),
		))
		return digest[:], nil

	default:
		return nil, fmt.Errorf("%w: unknown transaction format %d", ErrEncoding, t.Format)
	}
}
