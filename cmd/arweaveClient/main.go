package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/permadata-labs/arweave-go/internal/aws"
	"github.com/permadata-labs/arweave-go/pkg/client"
	"github.com/permadata-labs/arweave-go/pkg/clients/gateway"
	"github.com/permadata-labs/arweave-go/pkg/config"
	"github.com/permadata-labs/arweave-go/pkg/crypto"
	"github.com/permadata-labs/arweave-go/pkg/crypto/awskms"
	"github.com/permadata-labs/arweave-go/pkg/currency"
	"github.com/permadata-labs/arweave-go/pkg/logger"
	"github.com/permadata-labs/arweave-go/pkg/types"
	"github.com/permadata-labs/arweave-go/pkg/wallet"
)

func main() {
	app := &cli.App{
		Name:  "arweave-client",
		Usage: "Wallet and transaction client for the Arweave permanent storage network",
		Description: `A command line client for creating, signing and submitting Arweave transactions.

This client can:
- Generate and inspect RSA wallets in JWK format
- Transfer AR between wallets
- Store data permanently, chunking payloads above the inline limit
- Check balances, storage prices and transaction status through a gateway`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "gateway-url",
				Usage:   "Gateway URL",
				EnvVars: []string{config.EnvGatewayURL},
				Value:   config.DefaultGatewayURL,
			},
			&cli.StringFlag{
				Name:    "wallet",
				Usage:   "Path to a JWK wallet file",
				EnvVars: []string{config.EnvWalletPath},
			},
			&cli.StringFlag{
				Name:    "kms-key-id",
				Usage:   "AWS KMS key ID for signing instead of a local wallet",
				EnvVars: []string{config.EnvKMSKeyID},
			},
			&cli.StringFlag{
				Name:    "aws-region",
				Usage:   "AWS region for KMS",
				EnvVars: []string{config.EnvAWSRegion},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{"VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a new wallet and write it as a JWK file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Usage:    "Path for the wallet file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "bits",
						Usage: "RSA key size in bits",
						Value: wallet.DefaultKeySize,
					},
				},
				Action: generateCommand,
			},
			{
				Name:   "address",
				Usage:  "Print the wallet address of the configured signing key",
				Action: addressCommand,
			},
			{
				Name:  "balance",
				Usage: "Print the balance of a wallet address",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "address",
						Usage: "Wallet address (defaults to the configured signing key)",
					},
				},
				Action: balanceCommand,
			},
			{
				Name:   "anchor",
				Usage:  "Print a fresh transaction anchor",
				Action: anchorCommand,
			},
			{
				Name:  "price",
				Usage: "Print the fee in winston for storing a payload",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "bytes",
						Usage: "Payload size in bytes",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "Target wallet address for a transfer",
					},
				},
				Action: priceCommand,
			},
			{
				Name:  "send",
				Usage: "Transfer AR to another wallet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "target",
						Usage:    "Recipient wallet address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "amount",
						Usage:    "Amount in AR, e.g. 0.5",
						Required: true,
					},
				},
				Action: sendCommand,
			},
			{
				Name:  "upload",
				Usage: "Store a file on the network",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path of the file to store",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "Content-Type tag for the data",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Additional tag as name=value, repeatable",
					},
				},
				Action: uploadCommand,
			},
			{
				Name:  "status",
				Usage: "Print the confirmation status of a transaction",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Transaction id",
						Required: true,
					},
				},
				Action: statusCommand,
			},
			{
				Name:  "verify",
				Usage: "Fetch a transaction and verify its signature",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Transaction id",
						Required: true,
					},
				},
				Action: verifyCommand,
			},
			{
				Name:   "info",
				Usage:  "Print gateway and network status",
				Action: infoCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newProvider resolves the signing key: an AWS KMS key when --kms-key-id is
// set, otherwise a local JWK wallet file. Returns nil when neither is
// configured, which leaves the client read-only.
func newProvider(c *cli.Context, zapLogger *zap.Logger) (crypto.ISigningProvider, error) {
	if keyID := c.String("kms-key-id"); keyID != "" {
		awsCfg, err := aws.LoadAWSConfig(c.Context, c.String("aws-region"))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return awskms.NewKMSProvider(c.Context, awsCfg, keyID, zapLogger)
	}

	if path := c.String("wallet"); path != "" {
		w, err := wallet.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
		return crypto.NewRSAProvider(w.PrivateKey)
	}

	return nil, nil
}

// createClient creates a client from CLI context
func createClient(c *cli.Context) (*client.Client, error) {
	zapLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	provider, err := newProvider(c, zapLogger)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	cfg.GatewayURL = c.String("gateway-url")

	arClient, err := client.NewClient(&client.ClientConfig{
		Config:   cfg,
		Provider: provider,
		Logger:   zapLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return arClient, nil
}

// generateCommand handles the generate subcommand
func generateCommand(c *cli.Context) error {
	w, err := wallet.Generate(c.Int("bits"))
	if err != nil {
		return fmt.Errorf("failed to generate wallet: %w", err)
	}

	output := c.String("output")
	if err := w.Save(output); err != nil {
		return fmt.Errorf("failed to write wallet: %w", err)
	}

	fmt.Printf("✅ Wallet written to: %s\n", output)
	fmt.Printf("  Address: %s\n", w.Address())
	return nil
}

// addressCommand handles the address subcommand
func addressCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	address, err := arClient.Address()
	if err != nil {
		if errors.Is(err, crypto.ErrKeyUnavailable) {
			return fmt.Errorf("no signing key configured, set --wallet or --kms-key-id")
		}
		return err
	}

	fmt.Println(address)
	return nil
}

// balanceCommand handles the balance subcommand
func balanceCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	address := c.String("address")
	if address == "" {
		address, err = arClient.Address()
		if err != nil {
			return fmt.Errorf("no address given and no signing key configured: %w", err)
		}
	}

	balance, err := arClient.Balance(c.Context, address)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	fmt.Printf("%s winston (%s AR)\n", balance, balance.AR())
	return nil
}

// anchorCommand handles the anchor subcommand
func anchorCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	anchor, err := arClient.TxAnchor(c.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch anchor: %w", err)
	}

	fmt.Println(anchor)
	return nil
}

// priceCommand handles the price subcommand
func priceCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	price, err := arClient.Price(c.Context, c.Int("bytes"), c.String("target"))
	if err != nil {
		return fmt.Errorf("failed to fetch price: %w", err)
	}

	fmt.Printf("%s winston (%s AR)\n", price, price.AR())
	return nil
}

// sendCommand handles the send subcommand
func sendCommand(c *cli.Context) error {
	amount, err := currency.FromAR(c.String("amount"))
	if err != nil {
		return err
	}

	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	transaction, err := arClient.CreateTransaction(ctx, &client.TransactionRequest{
		Target:   c.String("target"),
		Quantity: amount,
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := arClient.SignTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	id, reward, err := arClient.PostTransaction(ctx, transaction)
	if err != nil {
		return fmt.Errorf("failed to post transaction: %w", err)
	}

	fmt.Printf("✅ Transaction accepted\n")
	fmt.Printf("  ID:     %s\n", id)
	fmt.Printf("  Amount: %s AR\n", amount.AR())
	fmt.Printf("  Fee:    %s winston\n", currency.Winston(reward))
	return nil
}

// uploadCommand handles the upload subcommand
func uploadCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tags, err := parseTags(c.StringSlice("tag"))
	if err != nil {
		return err
	}

	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	transaction, err := arClient.CreateTransaction(ctx, &client.TransactionRequest{
		Data:        data,
		Tags:        tags,
		ContentType: c.String("content-type"),
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := arClient.SignTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := arClient.Submit(ctx, transaction); err != nil {
		return fmt.Errorf("failed to submit transaction: %w", err)
	}

	fmt.Printf("✅ Stored %d bytes\n", len(data))
	fmt.Printf("  ID:  %s\n", transaction.ID)
	fmt.Printf("  Fee: %s winston\n", transaction.Reward)
	return nil
}

// statusCommand handles the status subcommand
func statusCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	id := c.String("id")
	status, err := arClient.TxStatus(c.Context, id)
	if errors.Is(err, gateway.ErrPendingTransaction) {
		fmt.Printf("⏳ Transaction %s is pending\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch status: %w", err)
	}

	fmt.Printf("✅ Transaction %s is confirmed\n", id)
	fmt.Printf("  Block height:  %d\n", status.BlockHeight)
	fmt.Printf("  Block hash:    %s\n", status.BlockIndepHash)
	fmt.Printf("  Confirmations: %d\n", status.NumberOfConfirmations)
	return nil
}

// verifyCommand handles the verify subcommand
func verifyCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	id := c.String("id")
	transaction, err := arClient.GetTransaction(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction: %w", err)
	}

	if err := arClient.VerifyTransaction(transaction); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	fmt.Printf("✅ Signature valid\n")
	fmt.Printf("  Owner: %s\n", crypto.Address(transaction.Owner))
	return nil
}

// infoCommand handles the info subcommand
func infoCommand(c *cli.Context) error {
	arClient, err := createClient(c)
	if err != nil {
		return err
	}

	info, err := arClient.NetworkInfo(c.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch network info: %w", err)
	}

	fmt.Printf("Network: %s (release %d)\n", info.Network, info.Release)
	fmt.Printf("Height:  %d\n", info.Height)
	fmt.Printf("Blocks:  %d\n", info.Blocks)
	fmt.Printf("Peers:   %d\n", info.Peers)
	return nil
}

// parseTags turns repeated name=value flags into transaction tags.
func parseTags(pairs []string) ([]types.Tag, error) {
	tags := make([]types.Tag, 0, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid tag %q, expected name=value", pair)
		}
		tags = append(tags, types.NewTag(name, value))
	}
	return tags, nil
}
