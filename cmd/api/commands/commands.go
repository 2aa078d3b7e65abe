package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerlite/core/internal/adapters/repository"
	"github.com/ledgerlite/core/internal/infrastructure/config"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
	"github.com/ledgerlite/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the LedgerLite server",
		Long:  "Start the LedgerLite server with the web UI and JSON API",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the data file to the default seed records",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print LedgerLite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("LedgerLite v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	repo, err := repository.NewFileTransactionRepository(cfg.Storage.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open transaction store", "error", err)
	}

	srv, err := server.New(cfg, repo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting LedgerLite server",
		"address", cfg.Server.GetAddress(),
		"data_file", cfg.Storage.Path,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(cfg.Server.GetAddress()); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server shutdown failed", "error", err)
	}
}

func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	repo, err := repository.NewFileTransactionRepository(cfg.Storage.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open transaction store", "error", err)
	}

	if err := repo.Reset(context.Background()); err != nil {
		appLogger.Fatal("Failed to seed data file", "error", err)
	}

	fmt.Printf("Data file %s reset to default seed records\n", cfg.Storage.Path)
}
