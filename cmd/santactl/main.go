// Command santactl runs draws and inspects exchanges against the same
// stores the HTTP server uses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"secret-santa-backend/internal/bootstrap"
	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/common/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(loadApp, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadApp reads the environment and connects to the configured stores.
// Logs go to stderr so command output stays machine readable.
func loadApp(ctx context.Context, verbose bool) (*bootstrap.App, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := zerolog.Nop()
	if verbose {
		log = logger.New(os.Stderr, cfg.ServiceName+"-cli", cfg.Debug)
	}

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}
