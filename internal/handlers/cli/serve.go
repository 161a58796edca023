package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/walletwatch/internal/app"
	"github.com/gabapcia/walletwatch/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long serve waits for in-flight work on exit.
const shutdownTimeout = 10 * time.Second

// serveCommand returns a CLI command that runs the monitoring core.
//
// Usage example:
//
//	walletwatch serve
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM), the
// context ends, or the HTTP API fails.
func serveCommand(a app.Service) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Restores the watch list, starts monitoring and serves the HTTP API.",
		Usage:       "Runs the monitoring core. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			if err := a.Start(ctx); err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
				defer cancel()

				if err := a.Close(shutdownCtx); err != nil {
					logger.Error(ctx, "graceful shutdown failed", "error", err)
				}
			}()

			select {
			case <-quit:
				logger.Info(ctx, "shutdown signal received")
			case <-ctx.Done():
			case err := <-a.Errors():
				return err
			}

			return nil
		},
	}
}
