package cli

import (
	"context"
	"os"

	"github.com/gabapcia/walletwatch/internal/app"
	"github.com/gabapcia/walletwatch/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the walletwatch CLI application.
//
// It registers all available commands, including:
//
//   - `serve`: Runs the monitoring core and its HTTP API.
//   - `watch`: Adds a wallet to the persisted watch list.
//   - `unwatch`: Removes a wallet from the persisted watch list.
//   - `wallets`: Prints the persisted watch list.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - network: The default watch list network for wallet commands.
//   - wr: The walletregistry service used by wallet commands.
//   - a: The application lifecycle run by the serve command.
func Run(ctx context.Context, network string, wr walletregistry.Service, a app.Service) error {
	return newApp(network, wr, a).Run(ctx, os.Args)
}

func newApp(network string, wr walletregistry.Service, a app.Service) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletwatch",
		Description:           "Watches wallet balances and transfers and raises notifications on changes.",
		Usage:                 "walletwatch [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(a),
			startWatchingWalletCommand(network, wr),
			stopWatchingWalletCommand(network, wr),
			listWalletsCommand(network, wr),
		},
	}
}
