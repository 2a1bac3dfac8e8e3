package config

import (
	"net/url"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for client configuration
const (
	EnvGatewayURL = "ARWEAVE_GATEWAY_URL"
	EnvWalletPath = "ARWEAVE_WALLET_PATH"
	EnvKMSKeyID   = "ARWEAVE_KMS_KEY_ID"
	EnvAWSRegion  = "ARWEAVE_AWS_REGION"
)

// Protocol defaults. Every value is a default, not a hard limit; the Config
// fields override them per client.
const (
	// DefaultGatewayURL is the public gateway.
	DefaultGatewayURL = "https://arweave.net"

	// MaxChunkSize is the payload slice a single chunk upload carries.
	MaxChunkSize = 256 * 1024

	// MaxInlineDataSize is the largest payload posted inline on the
	// transaction body. Anything strictly larger goes through chunk uploads.
	MaxInlineDataSize = 10_000_000

	// ChunkRetries bounds the attempts for one HTTP post, header and chunk
	// submissions alike.
	ChunkRetries = 10

	// ChunkRetryDelay separates consecutive attempts of the same request.
	ChunkRetryDelay = time.Second

	// BufferFactor scales the caller's buffer into the cap on in-flight
	// chunk posts.
	BufferFactor = 20

	// DefaultBuffer is the submission buffer used when the caller sets none.
	DefaultBuffer = 5

	// DefaultRequestTimeout bounds a single gateway HTTP request.
	DefaultRequestTimeout = 30 * time.Second
)

// Config carries the tunable behavior of a client: where the gateway is and
// how submissions are sized, retried and parallelized.
type Config struct {
	GatewayURL        string
	RequestTimeout    time.Duration
	MaxChunkSize      int
	MaxInlineDataSize int
	ChunkRetries      int
	ChunkRetryDelay   time.Duration
	BufferFactor      int
	Buffer            int
}

// DefaultConfig returns a Config populated with the protocol defaults.
func DefaultConfig() *Config {
	return &Config{
		GatewayURL:        DefaultGatewayURL,
		RequestTimeout:    DefaultRequestTimeout,
		MaxChunkSize:      MaxChunkSize,
		MaxInlineDataSize: MaxInlineDataSize,
		ChunkRetries:      ChunkRetries,
		ChunkRetryDelay:   ChunkRetryDelay,
		BufferFactor:      BufferFactor,
		Buffer:            DefaultBuffer,
	}
}

// Validate checks the configuration and aggregates every problem found.
func (c *Config) Validate() error {
	var allErrors field.ErrorList

	if c.GatewayURL == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("gatewayUrl"), "gateway URL is required"))
	} else if parsed, err := url.Parse(c.GatewayURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		allErrors = append(allErrors, field.Invalid(field.NewPath("gatewayUrl"), c.GatewayURL, "gateway URL must be absolute"))
	}

	if c.RequestTimeout <= 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("requestTimeout"), c.RequestTimeout, "request timeout must be positive"))
	}
	if c.MaxChunkSize <= 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("maxChunkSize"), c.MaxChunkSize, "chunk size must be positive"))
	}
	if c.MaxInlineDataSize < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("maxInlineDataSize"), c.MaxInlineDataSize, "inline threshold cannot be negative"))
	}
	if c.ChunkRetries < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("chunkRetries"), c.ChunkRetries, "at least one attempt is required"))
	}
	if c.ChunkRetryDelay < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("chunkRetryDelay"), c.ChunkRetryDelay, "retry delay cannot be negative"))
	}
	if c.BufferFactor < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("bufferFactor"), c.BufferFactor, "buffer factor must be at least 1"))
	}
	if c.Buffer < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("buffer"), c.Buffer, "buffer must be at least 1"))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
