package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skhandal/doi/pkg/infrastructure/events"
	"github.com/skhandal/doi/pkg/infrastructure/logging"
	"github.com/skhandal/doi/pkg/infrastructure/metrics"
	"github.com/skhandal/doi/pkg/infrastructure/repositories/csv"
	"github.com/skhandal/doi/pkg/interfaces/httpapi"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Addr          string
	SalesFile     string
	InventoryFile string
	WindowDays    int
	LogFile       string
	Verbose       bool
}

// ServeCommand runs the DOI HTTP API
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute starts the HTTP server and blocks until shutdown
func (c *ServeCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return err
	}

	logger, logHandle, err := logging.Setup(c.config.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if logHandle != nil {
		defer logHandle.Close()
	}

	handler := httpapi.NewHandler(httpapi.Config{
		Sales:      csv.NewSalesFile(c.config.SalesFile),
		Inventory:  csv.NewInventoryFile(c.config.InventoryFile),
		WindowDays: c.config.WindowDays,
		Logger:     logger,
		Metrics:    metrics.NewCollector(),
		Events:     events.NewInMemoryStore(),
	})

	server := &http.Server{
		Addr:              c.config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", c.config.Addr)
		if c.config.Verbose {
			fmt.Printf("🌐 DOI server listening on %s\n", c.config.Addr)
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// validateInputs checks the command configuration
func (c *ServeCommand) validateInputs() error {
	if c.config.Addr == "" {
		return fmt.Errorf("--addr is required")
	}

	if c.config.WindowDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.config.WindowDays)
	}

	for _, name := range []string{c.config.SalesFile, c.config.InventoryFile} {
		if _, err := os.Stat(name); err != nil {
			return fmt.Errorf("input file not found: %s", name)
		}
	}

	return nil
}

var serveConfig ServeConfig

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the DOI table over HTTP",
	Long: `Serve starts an HTTP API that computes the DOI table on demand from the
configured CSV files. Every request re-reads the files, so a replaced
export shows up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServeDefaults()
		return NewServeCommand(serveConfig).Execute(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfig.Addr, "addr", "", "listen address, e.g. :8080")
	serveCmd.Flags().StringVar(&serveConfig.SalesFile, "sales", "", "path to the sales CSV export")
	serveCmd.Flags().StringVar(&serveConfig.InventoryFile, "inventory", "", "path to the inventory CSV export")
	serveCmd.Flags().IntVar(&serveConfig.WindowDays, "days", 0, "number of trailing order dates in the sales window")
	serveCmd.Flags().StringVar(&serveConfig.LogFile, "log-file", "", "append logs to this file instead of stderr")
	serveCmd.Flags().BoolVarP(&serveConfig.Verbose, "verbose", "v", false, "enable verbose output")
}

// applyServeDefaults fills unset flags from the environment configuration
func applyServeDefaults() {
	if serveConfig.Addr == "" {
		serveConfig.Addr = cfg.HTTPAddr
	}
	if serveConfig.SalesFile == "" {
		serveConfig.SalesFile = cfg.SalesFile
	}
	if serveConfig.InventoryFile == "" {
		serveConfig.InventoryFile = cfg.InventoryFile
	}
	if serveConfig.WindowDays <= 0 {
		serveConfig.WindowDays = cfg.WindowDays
	}
	if serveConfig.LogFile == "" {
		serveConfig.LogFile = cfg.LogFile
	}
}
