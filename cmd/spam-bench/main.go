package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/spam-bench/internal/bench"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildContainer(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.Flags,
	cfg *config.Config,
	logger *zap.Logger,
	runner *bench.Runner,
	store core.ResultStore,
) error {
	defer logger.Sync()
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close result store", zap.Error(err))
		}
	}()

	// Stop between classifiers on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.History > 0 {
		return runner.History(ctx, flags.History)
	}

	path := cfg.GetData().Path
	if _, err := runner.Run(ctx, path); err != nil {
		logger.Error("Benchmark failed", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
