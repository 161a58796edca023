package etherscan

import (
	"context"
	"net/url"

	"github.com/gabapcia/walletwatch/internal/portfolio"
)

// NativeBalance implements walletdata.Provider using account.balance.
func (c *client) NativeBalance(ctx context.Context, address portfolio.Address) (string, error) {
	return fetch[string](ctx, c.conn, "account", "balance", url.Values{
		"address": {address.String()},
		"tag":     {"latest"},
	})
}

// TokenBalance implements walletdata.Provider using account.tokenbalance.
func (c *client) TokenBalance(ctx context.Context, address, contract portfolio.Address) (string, error) {
	return fetch[string](ctx, c.conn, "account", "tokenbalance", url.Values{
		"contractaddress": {contract.String()},
		"address":         {address.String()},
		"tag":             {"latest"},
	})
}
