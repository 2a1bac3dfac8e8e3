package gateway

import (
	"context"

	"github.com/permadata-labs/arweave-go/pkg/tx"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// IGatewayClient defines the interface for talking to an Arweave gateway.
// This interface abstracts the HTTP client implementation to allow for
// easier testing and potential alternative implementations.
type IGatewayClient interface {
	// TxAnchor fetches a recent block hash to use as the last_tx anchor of a
	// new transaction. This corresponds to GET /tx_anchor.
	TxAnchor(ctx context.Context) (string, error)

	// Price returns the fee in winston for storing dataSize bytes, optionally
	// addressed to a target wallet. This corresponds to GET /price/{bytes}
	// and GET /price/{bytes}/{target}.
	Price(ctx context.Context, dataSize int, target string) (uint64, error)

	// SubmitTx posts a transaction header or a full inline transaction.
	// It returns the HTTP status code and response body without interpreting
	// them; retry policy belongs to the caller.
	SubmitTx(ctx context.Context, transaction *tx.Transaction) (int, []byte, error)

	// SubmitChunk posts a single chunk with its merkle proof.
	// It returns the HTTP status code and response body without interpreting
	// them; retry policy belongs to the caller.
	SubmitChunk(ctx context.Context, chunk *types.ChunkUpload) (int, []byte, error)

	// TxStatus reports the confirmation status of an accepted transaction.
	// Transactions still waiting for a block return ErrPendingTransaction.
	TxStatus(ctx context.Context, id string) (*types.TxStatus, error)

	// GetTransaction fetches an accepted transaction by id. The returned
	// transaction carries no chunked payload data, only the header fields.
	GetTransaction(ctx context.Context, id string) (*tx.Transaction, error)

	// Balance returns the winston balance of a wallet address.
	Balance(ctx context.Context, address string) (uint64, error)

	// LastTx returns the id of the last transaction made by a wallet address.
	LastTx(ctx context.Context, address string) (string, error)

	// NetworkInfo fetches gateway and network status. This corresponds to
	// GET /info.
	NetworkInfo(ctx context.Context) (*types.NetworkInfo, error)
}

// Compile-time check to ensure Client implements IGatewayClient
var _ IGatewayClient = (*Client)(nil)
