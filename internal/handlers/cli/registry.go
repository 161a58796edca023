package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/gabapcia/walletwatch/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

func networkFlag(network string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "network",
		Usage: "Watch list network name",
		Value: network,
	}
}

// startWatchingWalletCommand returns a CLI command that adds a wallet address
// to the persisted watch list.
//
// Usage example:
//
//	walletwatch watch --address 0xABC123... --label treasury
func startWatchingWalletCommand(network string, wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Add a wallet to the persisted watch list.",
		Usage:       "Registers a wallet address for watching. The address is required.",
		Flags: []cli.Flag{
			networkFlag(network),
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to start watching",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "label",
				Usage: "Human readable name for the wallet",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			w, err := wr.StartWatching(ctx, c.String("network"), c.String("address"), c.String("label"))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.Root().Writer, "watching %s on %s\n", w.Address, w.Network)
			return err
		},
	}
}

// stopWatchingWalletCommand returns a CLI command that removes a wallet
// address from the persisted watch list.
//
// Usage example:
//
//	walletwatch unwatch --address 0xABC123...
func stopWatchingWalletCommand(network string, wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "unwatch",
		Description: "Remove a wallet from the persisted watch list.",
		Usage:       "Stops watching a wallet address. The address is required.",
		Flags: []cli.Flag{
			networkFlag(network),
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to stop watching",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wr.StopWatching(ctx, c.String("network"), c.String("address"))
		},
	}
}

// listWalletsCommand returns a CLI command that prints the persisted watch list.
func listWalletsCommand(network string, wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "wallets",
		Description: "Print the persisted watch list.",
		Usage:       "Lists every watched wallet with its label.",
		Flags: []cli.Flag{
			networkFlag(network),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			wallets, err := wr.List(ctx, c.String("network"))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tLABEL")
			for _, w := range wallets {
				fmt.Fprintf(tw, "%s\t%s\n", w.Address, w.Label)
			}
			return tw.Flush()
		},
	}
}
