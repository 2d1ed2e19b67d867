// Package cli is the command-line surface over the storefront client: it
// builds the composed store from configuration and exposes the catalog,
// tracking, session, and checkout flows as subcommands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/config"
	"github.com/storefront/client/internal/logger"
	"github.com/storefront/client/internal/storage"
	"github.com/storefront/client/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - headless clothing store client",
	Long: `Storefront is a headless client for the clothing store API.

It keeps the cart, wishlist, and session in durable local storage, so
commands compose across invocations: add to the cart, log in, then run
checkout.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Store
	closer func()
}

// setup loads configuration and builds the wired store. The returned closer
// flushes the logger and releases the storage backend.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	st, err := storage.New(cfg.Storage, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &app{
		cfg:   cfg,
		log:   log,
		store: store.New(cfg, st, log),
		closer: func() {
			if err := st.Close(); err != nil {
				log.Warn("failed to close storage", zap.Error(err))
			}
			_ = log.Sync()
		},
	}, nil
}
