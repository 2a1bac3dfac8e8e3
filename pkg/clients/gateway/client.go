package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/permadata-labs/arweave-go/pkg/tx"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

const defaultTimeout = 30 * time.Second

// ClientConfig holds the configuration for the gateway client
type ClientConfig struct {
	URL     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client is a thin HTTP client for one Arweave gateway. It performs no
// retries and no interpretation beyond status checks and JSON decoding.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new gateway client instance
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		url:    strings.TrimRight(config.URL, "/"),
		logger: config.Logger,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}, nil
}

// TxAnchor fetches a recent block hash for use as a transaction anchor
func (c *Client) TxAnchor(ctx context.Context) (string, error) {
	status, body, err := c.get(ctx, "tx_anchor")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", responseError("tx_anchor", status, body)
	}
	return strings.TrimSpace(string(body)), nil
}

// Price returns the storage fee in winston for dataSize bytes
func (c *Client) Price(ctx context.Context, dataSize int, target string) (uint64, error) {
	endpoint := fmt.Sprintf("price/%d", dataSize)
	if target != "" {
		endpoint = fmt.Sprintf("price/%d/%s", dataSize, target)
	}

	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, responseError(endpoint, status, body)
	}

	reward, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("gateway: parsing price response %q: %w", body, err)
	}
	return reward, nil
}

// SubmitTx posts a transaction and returns the raw status code and body
func (c *Client) SubmitTx(ctx context.Context, transaction *tx.Transaction) (int, []byte, error) {
	c.logger.Sugar().Debugw("Posting transaction",
		"id", transaction.ID.String(),
		"data_size", transaction.DataSize,
	)
	return c.post(ctx, "tx", transaction)
}

// SubmitChunk posts a single chunk and returns the raw status code and body
func (c *Client) SubmitChunk(ctx context.Context, chunk *types.ChunkUpload) (int, []byte, error) {
	c.logger.Sugar().Debugw("Posting chunk",
		"data_root", chunk.DataRoot.String(),
		"offset", chunk.Offset,
	)
	return c.post(ctx, "chunk", chunk)
}

// TxStatus reports the confirmation status of a transaction
func (c *Client) TxStatus(ctx context.Context, id string) (*types.TxStatus, error) {
	endpoint := fmt.Sprintf("tx/%s/status", id)
	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusAccepted:
		return nil, ErrPendingTransaction
	default:
		return nil, responseError(endpoint, status, body)
	}

	var txStatus types.TxStatus
	if err := json.Unmarshal(body, &txStatus); err != nil {
		return nil, fmt.Errorf("gateway: decoding status response: %w", err)
	}
	return &txStatus, nil
}

// GetTransaction fetches an accepted transaction header by id
func (c *Client) GetTransaction(ctx context.Context, id string) (*tx.Transaction, error) {
	endpoint := fmt.Sprintf("tx/%s", id)
	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusAccepted:
		return nil, ErrPendingTransaction
	default:
		return nil, responseError(endpoint, status, body)
	}

	var transaction tx.Transaction
	if err := json.Unmarshal(body, &transaction); err != nil {
		return nil, fmt.Errorf("gateway: decoding transaction response: %w", err)
	}
	return &transaction, nil
}

// Balance returns the winston balance of a wallet address
func (c *Client) Balance(ctx context.Context, address string) (uint64, error) {
	endpoint := fmt.Sprintf("wallet/%s/balance", address)
	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, responseError(endpoint, status, body)
	}

	balance, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("gateway: parsing balance response %q: %w", body, err)
	}
	return balance, nil
}

// LastTx returns the id of the last transaction made by a wallet address
func (c *Client) LastTx(ctx context.Context, address string) (string, error) {
	endpoint := fmt.Sprintf("wallet/%s/last_tx", address)
	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", responseError(endpoint, status, body)
	}
	return strings.TrimSpace(string(body)), nil
}

// NetworkInfo fetches gateway and network status
func (c *Client) NetworkInfo(ctx context.Context) (*types.NetworkInfo, error) {
	status, body, err := c.get(ctx, "info")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, responseError("info", status, body)
	}

	var info types.NetworkInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("gateway: decoding network info response: %w", err)
	}
	return &info, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/"+endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("gateway: reading response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func responseError(endpoint string, status int, body []byte) error {
	return fmt.Errorf("gateway: %s returned status %d: %s", endpoint, status, strings.TrimSpace(string(body)))
}
