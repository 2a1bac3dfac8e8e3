package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/permadata-labs/arweave-go/pkg/clients/gateway"
	"github.com/permadata-labs/arweave-go/pkg/config"
	"github.com/permadata-labs/arweave-go/pkg/crypto"
	"github.com/permadata-labs/arweave-go/pkg/currency"
	"github.com/permadata-labs/arweave-go/pkg/tx"
	"github.com/permadata-labs/arweave-go/pkg/types"
	"github.com/permadata-labs/arweave-go/pkg/uploader"
)

// ClientConfig holds the configuration for the high level client
type ClientConfig struct {
	// Config carries gateway and submission settings; nil uses the defaults.
	Config *config.Config

	// Provider backs signing. A nil provider leaves the client read-only:
	// verification still works, signing fails with ErrKeyUnavailable.
	Provider crypto.ISigningProvider

	Logger *zap.Logger
}

// Client ties the pieces together: a signing provider, a gateway client and
// the submission pipeline behind one interface for application code.
type Client struct {
	config   *config.Config
	provider crypto.ISigningProvider
	signer   *tx.Signer
	gateway  gateway.IGatewayClient
	uploader uploader.IUploader
	logger   *zap.Logger
}

// TransactionRequest describes a transaction to create. Target and Quantity
// cover transfers, Data covers uploads; both may be combined.
type TransactionRequest struct {
	Target   string
	Quantity currency.Winston
	Data     []byte
	Tags     []types.Tag

	// ContentType, when set, is recorded as a Content-Type tag.
	ContentType string

	// Reward overrides the fee; zero fetches the current price.
	Reward currency.Winston
}

// NewClient creates a new client instance
func NewClient(clientConfig *ClientConfig) (*Client, error) {
	if clientConfig == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if clientConfig.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	cfg := clientConfig.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider := clientConfig.Provider
	if provider == nil {
		provider = crypto.NewVerifier()
	}
	signer, err := tx.NewSigner(provider)
	if err != nil {
		return nil, err
	}

	gatewayClient, err := gateway.NewClient(&gateway.ClientConfig{
		URL:     cfg.GatewayURL,
		Timeout: cfg.RequestTimeout,
		Logger:  clientConfig.Logger,
	})
	if err != nil {
		return nil, err
	}

	txUploader, err := uploader.NewUploader(&uploader.UploaderConfig{
		Gateway: gatewayClient,
		Logger:  clientConfig.Logger,
		Retry: uploader.RetryConfig{
			MaxAttempts: cfg.ChunkRetries,
			Delay:       cfg.ChunkRetryDelay,
		},
		MaxInlineSize: cfg.MaxInlineDataSize,
		ChunkSize:     cfg.MaxChunkSize,
		BufferFactor:  cfg.BufferFactor,
		Buffer:        cfg.Buffer,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		config:   cfg,
		provider: provider,
		signer:   signer,
		gateway:  gatewayClient,
		uploader: txUploader,
		logger:   clientConfig.Logger,
	}, nil
}

// Address returns the wallet address of the signing provider.
func (c *Client) Address() (string, error) {
	return c.provider.Address()
}

// CreateTransaction builds an unsigned transaction: it fetches a fresh
// anchor, attaches the payload with its chunk tree commitment and prices the
// fee unless the request overrides it.
func (c *Client) CreateTransaction(ctx context.Context, req *TransactionRequest) (*tx.Transaction, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	transaction := tx.New()
	if err := transaction.SetTarget(req.Target); err != nil {
		return nil, err
	}
	transaction.SetQuantity(uint64(req.Quantity))
	transaction.Tags = append(transaction.Tags, req.Tags...)
	if req.ContentType != "" {
		transaction.AddTag("Content-Type", req.ContentType)
	}

	anchor, err := c.gateway.TxAnchor(ctx)
	if err != nil {
		return nil, err
	}
	lastTx, err := types.DecodeBase64(anchor)
	if err != nil {
		return nil, fmt.Errorf("client: decoding anchor %q: %w", anchor, err)
	}
	transaction.LastTx = lastTx

	if err := transaction.PrepareData(req.Data, c.config.MaxChunkSize); err != nil {
		return nil, err
	}

	reward := uint64(req.Reward)
	if reward == 0 {
		reward, err = c.gateway.Price(ctx, len(req.Data), req.Target)
		if err != nil {
			return nil, err
		}
	}
	transaction.SetReward(reward)

	c.logger.Sugar().Debugw("Created transaction",
		"target", req.Target,
		"quantity", transaction.Quantity,
		"reward", transaction.Reward,
		"data_size", transaction.DataSize,
	)
	return transaction, nil
}

// SignTransaction signs the transaction with the configured provider.
func (c *Client) SignTransaction(ctx context.Context, transaction *tx.Transaction) error {
	return c.signer.SignTransaction(ctx, transaction)
}

// VerifyTransaction checks the signature against the owner recorded on the
// transaction. It needs no signing key.
func (c *Client) VerifyTransaction(transaction *tx.Transaction) error {
	return c.signer.VerifyTransaction(transaction)
}

// Submit posts a signed transaction, chunking the payload when it exceeds
// the inline threshold.
func (c *Client) Submit(ctx context.Context, transaction *tx.Transaction) error {
	return c.uploader.Submit(ctx, transaction)
}

// PostTransaction posts a signed transaction inline and returns its id and
// reward in winston.
func (c *Client) PostTransaction(ctx context.Context, transaction *tx.Transaction) (types.Base64, uint64, error) {
	return c.uploader.PostTransaction(ctx, transaction)
}

// TxAnchor fetches a fresh transaction anchor.
func (c *Client) TxAnchor(ctx context.Context) (string, error) {
	return c.gateway.TxAnchor(ctx)
}

// Price returns the fee for storing dataSize bytes, optionally addressed to
// a target wallet.
func (c *Client) Price(ctx context.Context, dataSize int, target string) (currency.Winston, error) {
	reward, err := c.gateway.Price(ctx, dataSize, target)
	if err != nil {
		return 0, err
	}
	return currency.Winston(reward), nil
}

// Balance returns the winston balance of a wallet address.
func (c *Client) Balance(ctx context.Context, address string) (currency.Winston, error) {
	balance, err := c.gateway.Balance(ctx, address)
	if err != nil {
		return 0, err
	}
	return currency.Winston(balance), nil
}

// LastTx returns the id of the last transaction made by a wallet address.
func (c *Client) LastTx(ctx context.Context, address string) (string, error) {
	return c.gateway.LastTx(ctx, address)
}

// TxStatus reports the confirmation status of a transaction.
func (c *Client) TxStatus(ctx context.Context, id string) (*types.TxStatus, error) {
	return c.gateway.TxStatus(ctx, id)
}

// GetTransaction fetches an accepted transaction header by id.
func (c *Client) GetTransaction(ctx context.Context, id string) (*tx.Transaction, error) {
	return c.gateway.GetTransaction(ctx, id)
}

// NetworkInfo fetches gateway and network status.
func (c *Client) NetworkInfo(ctx context.Context) (*types.NetworkInfo, error) {
	return c.gateway.NetworkInfo(ctx)
}
