package uploader

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/permadata-labs/arweave-go/pkg/clients/gateway"
	"github.com/permadata-labs/arweave-go/pkg/config"
	"github.com/permadata-labs/arweave-go/pkg/merkle"
	"github.com/permadata-labs/arweave-go/pkg/tx"
	"github.com/permadata-labs/arweave-go/pkg/types"
)

// RetryConfig configures retry behavior for gateway posts
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryConfig provides default retry settings
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: config.ChunkRetries,
	Delay:       config.ChunkRetryDelay,
}

// UploaderConfig holds the configuration for the uploader
type UploaderConfig struct {
	Gateway gateway.IGatewayClient
	Logger  *zap.Logger
	Retry   RetryConfig

	// MaxInlineSize is the largest payload posted inline; defaults to the
	// protocol threshold.
	MaxInlineSize int

	// ChunkSize is the chunk split size; defaults to the protocol chunk size.
	ChunkSize int

	// BufferFactor and Buffer bound concurrent chunk posts to
	// BufferFactor * Buffer in-flight requests.
	BufferFactor int
	Buffer       int

	// ChunkRate caps chunk posts per second; zero means unpaced.
	ChunkRate rate.Limit
}

// Uploader drives transaction submission: inline posts for small payloads and
// header-plus-chunks for large ones, with bounded concurrency and retries.
type Uploader struct {
	gateway       gateway.IGatewayClient
	logger        *zap.Logger
	retry         RetryConfig
	maxInlineSize int
	chunkSize     int
	bufferFactor  int
	buffer        int
	limiter       *rate.Limiter
}

// NewUploader creates a new uploader instance
func NewUploader(uploaderConfig *UploaderConfig) (*Uploader, error) {
	if uploaderConfig == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if uploaderConfig.Gateway == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	if uploaderConfig.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	u := &Uploader{
		gateway:       uploaderConfig.Gateway,
		logger:        uploaderConfig.Logger,
		retry:         uploaderConfig.Retry,
		maxInlineSize: uploaderConfig.MaxInlineSize,
		chunkSize:     uploaderConfig.ChunkSize,
		bufferFactor:  uploaderConfig.BufferFactor,
		buffer:        uploaderConfig.Buffer,
	}
	if u.retry.MaxAttempts == 0 {
		u.retry = DefaultRetryConfig
	}
	if u.maxInlineSize == 0 {
		u.maxInlineSize = config.MaxInlineDataSize
	}
	if u.chunkSize == 0 {
		u.chunkSize = config.MaxChunkSize
	}
	if u.bufferFactor == 0 {
		u.bufferFactor = config.BufferFactor
	}
	if u.buffer == 0 {
		u.buffer = config.DefaultBuffer
	}
	if uploaderConfig.ChunkRate > 0 {
		u.limiter = rate.NewLimiter(uploaderConfig.ChunkRate, u.buffer)
	}
	return u, nil
}

// PostTransaction posts a signed transaction inline and returns its id and
// reward in winston
func (u *Uploader) PostTransaction(ctx context.Context, transaction *tx.Transaction) (types.Base64, uint64, error) {
	if transaction.ID.Empty() {
		return nil, 0, tx.ErrUnsignedTransaction
	}

	reward, err := strconv.ParseUint(transaction.Reward, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("uploader: parsing reward %q: %w", transaction.Reward, err)
	}

	err = u.postWithRetry(ctx, "tx", func(ctx context.Context) (int, []byte, error) {
		return u.gateway.SubmitTx(ctx, transaction)
	})
	if err != nil {
		return nil, 0, err
	}
	return transaction.ID, reward, nil
}

// Submit posts a signed transaction, inline or chunked depending on payload
// size
func (u *Uploader) Submit(ctx context.Context, transaction *tx.Transaction) error {
	if transaction.ID.Empty() {
		return tx.ErrUnsignedTransaction
	}

	session := uuid.New().String()
	dataSize := len(transaction.Data)

	if dataSize <= u.maxInlineSize {
		u.logger.Sugar().Infow("Submitting transaction inline",
			"session", session,
			"id", transaction.ID.String(),
			"data_size", dataSize,
		)
		err := u.postWithRetry(ctx, "tx", func(ctx context.Context) (int, []byte, error) {
			return u.gateway.SubmitTx(ctx, transaction)
		})
		if err != nil {
			return err
		}
		u.logger.Sugar().Infow("Transaction accepted", "session", session, "id", transaction.ID.String())
		return nil
	}

	u.logger.Sugar().Infow("Submitting transaction in chunks",
		"session", session,
		"id", transaction.ID.String(),
		"data_size", dataSize,
		"chunk_size", u.chunkSize,
	)

	tree, err := merkle.BuildChunkTree(transaction.Data, u.chunkSize)
	if err != nil {
		return fmt.Errorf("uploader: rebuilding chunk tree: %w", err)
	}
	if !bytes.Equal(tree.Root, transaction.DataRoot) {
		return fmt.Errorf("%w: rebuilt %s, transaction carries %s",
			ErrDataRootMismatch, tree.Root.String(), transaction.DataRoot.String())
	}

	header := transaction.Stripped()
	err = u.postWithRetry(ctx, "tx", func(ctx context.Context) (int, []byte, error) {
		return u.gateway.SubmitTx(ctx, header)
	})
	if err != nil {
		return err
	}
	u.logger.Sugar().Infow("Transaction header accepted", "session", session, "id", transaction.ID.String())

	return u.uploadChunks(ctx, session, transaction, tree)
}

func (u *Uploader) uploadChunks(ctx context.Context, session string, transaction *tx.Transaction, tree *merkle.ChunkTree) error {
	sem := make(chan struct{}, u.bufferFactor*u.buffer)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	failed := 0

	for index := range tree.Chunks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}

		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := u.uploadChunk(ctx, transaction, tree, index); err != nil {
				u.logger.Sugar().Warnw("Chunk upload failed",
					"session", session,
					"chunk", index,
					"error", err,
				)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				failed++
				mu.Unlock()
			}
		}(index)
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("%w: %d of %d chunks: %w",
			ErrChunkUploadFailed, failed, len(tree.Chunks), firstErr)
	}

	u.logger.Sugar().Infow("All chunks accepted",
		"session", session,
		"id", transaction.ID.String(),
		"chunks", len(tree.Chunks),
	)
	return nil
}

func (u *Uploader) uploadChunk(ctx context.Context, transaction *tx.Transaction, tree *merkle.ChunkTree, index int) error {
	proof, err := tree.Proof(index)
	if err != nil {
		return err
	}
	chunk := tree.Chunks[index]

	payload := &types.ChunkUpload{
		DataRoot: transaction.DataRoot,
		DataSize: transaction.DataSize,
		DataPath: proof,
		Offset:   strconv.FormatUint(chunk.EndOffset-1, 10),
		Chunk:    types.Base64(transaction.Data[chunk.StartOffset:chunk.EndOffset]),
	}

	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	return u.postWithRetry(ctx, fmt.Sprintf("chunk %d", index), func(ctx context.Context) (int, []byte, error) {
		return u.gateway.SubmitChunk(ctx, payload)
	})
}

// postWithRetry runs one post up to retry.MaxAttempts times with a fixed
// delay between attempts and none after the last. Transport errors and
// non-2xx statuses both count as failed attempts; context cancellation
// returns immediately.
func (u *Uploader) postWithRetry(ctx context.Context, label string, post func(context.Context) (int, []byte, error)) error {
	var lastErr error
	for attempt := 0; attempt < u.retry.MaxAttempts; attempt++ {
		status, body, err := post(ctx)
		if err == nil && status >= 200 && status < 300 {
			return nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
		}
		u.logger.Sugar().Debugw("Post attempt failed",
			"endpoint", label,
			"attempt", attempt+1,
			"error", lastErr,
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < u.retry.MaxAttempts-1 {
			select {
			case <-time.After(u.retry.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("%w: %s after %d attempts: %w",
		ErrStatusCodeNotOk, label, u.retry.MaxAttempts, lastErr)
}
