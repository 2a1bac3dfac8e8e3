package uploader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"github.com/permadata-labs/arweave-go/pkg/clients/gateway"
)

// TestChunkUploadsBounded verifies that no more than BufferFactor*Buffer
// chunk posts are in flight at once.
func TestChunkUploadsBounded(t *testing.T) {
	defer goleak.VerifyNone(t)

	const chunks = 8
	transaction, _ := newSubmittableTransaction(t, chunks*testChunkSize)

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tx" {
			w.WriteHeader(http.StatusOK)
			return
		}

		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gatewayClient, err := gateway.NewClient(&gateway.ClientConfig{
		URL:    server.URL,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	uploader, err := NewUploader(&UploaderConfig{
		Gateway:       gatewayClient,
		Logger:        zaptest.NewLogger(t),
		Retry:         RetryConfig{MaxAttempts: 1, Delay: time.Millisecond},
		MaxInlineSize: testInlineSize,
		ChunkSize:     testChunkSize,
		BufferFactor:  2,
		Buffer:        1,
	})
	require.NoError(t, err)

	require.NoError(t, uploader.Submit(context.Background(), transaction))

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, inFlight)
	assert.LessOrEqual(t, maxInFlight, 2)
	assert.Greater(t, maxInFlight, 0)
}

// TestSubmitCanceledContext verifies that cancellation aborts an in-progress
// chunk upload without leaking workers.
func TestSubmitCanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	transaction, _ := newSubmittableTransaction(t, 4*testChunkSize)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tx" {
			w.WriteHeader(http.StatusOK)
			return
		}
		// The server only notices the client disconnect (and cancels the
		// request context) once the body has been consumed; without the
		// drain this blocks forever and server.Close hangs.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	gatewayClient, err := gateway.NewClient(&gateway.ClientConfig{
		URL:    server.URL,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	uploader, err := NewUploader(&UploaderConfig{
		Gateway:       gatewayClient,
		Logger:        zaptest.NewLogger(t),
		Retry:         RetryConfig{MaxAttempts: 2, Delay: time.Second},
		MaxInlineSize: testInlineSize,
		ChunkSize:     testChunkSize,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	defer cancel()

	start := time.Now()
	err = uploader.Submit(ctx, transaction)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}

// TestChunkRatePacing verifies that the rate limiter spaces out chunk posts.
func TestChunkRatePacing(t *testing.T) {
	defer goleak.VerifyNone(t)

	const chunks = 4
	transaction, _ := newSubmittableTransaction(t, chunks*testChunkSize)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gatewayClient, err := gateway.NewClient(&gateway.ClientConfig{
		URL:    server.URL,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	uploader, err := NewUploader(&UploaderConfig{
		Gateway:       gatewayClient,
		Logger:        zaptest.NewLogger(t),
		Retry:         RetryConfig{MaxAttempts: 1, Delay: time.Millisecond},
		MaxInlineSize: testInlineSize,
		ChunkSize:     testChunkSize,
		BufferFactor:  1,
		Buffer:        1,
		ChunkRate:     rate.Limit(50),
	})
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, uploader.Submit(context.Background(), transaction))
	elapsed := time.Since(start)

	// Burst 1 at 50 posts/s means the last three chunks each wait 20ms.
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
}
