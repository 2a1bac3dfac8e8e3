package uploader

import (
	"context"

	"github.com/permadata-labs/arweave-go/pkg/tx"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// IUploader defines the interface for submitting signed transactions to the
// network. This interface abstracts the submission pipeline to allow for
// easier testing and potential alternative implementations.
type IUploader interface {
	// PostTransaction posts a signed transaction as a single request with its
	// payload inline, retrying per the retry configuration. It returns the
	// transaction id and the reward in winston.
	PostTransaction(ctx context.Context, transaction *tx.Transaction) (types.Base64, uint64, error)

	// Submit posts a signed transaction, routing by payload size: small
	// payloads go inline, large ones as a header followed by chunk uploads.
	Submit(ctx context.Context, transaction *tx.Transaction) error
}

// Compile-time check to ensure Uploader implements IUploader
var _ IUploader = (*Uploader)(nil)
