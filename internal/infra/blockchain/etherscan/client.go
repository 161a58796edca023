// Package etherscan adapts Etherscan-compatible explorer APIs to the
// walletdata.Provider interface.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gabapcia/walletwatch/internal/pkg/transport/explorerapi"
	"github.com/gabapcia/walletwatch/internal/walletdata"
)

// DefaultName is the provider name used for rate limiting when none is set.
const DefaultName = "etherscan"

// client implements walletdata.Provider on top of an explorer API connection.
type client struct {
	name string
	conn explorerapi.Client
}

// Ensure client implements the walletdata.Provider interface at compile time.
var _ walletdata.Provider = (*client)(nil)

// NewClient creates a provider that queries conn. An empty name falls back to
// DefaultName.
func NewClient(name string, conn explorerapi.Client) *client {
	if name == "" {
		name = DefaultName
	}

	return &client{
		name: name,
		conn: conn,
	}
}

// Name implements walletdata.Provider.
func (c *client) Name() string {
	return c.name
}

// fetch runs one query and decodes its result into T.
func fetch[T any](ctx context.Context, conn explorerapi.Client, module, action string, params url.Values) (T, error) {
	var out T

	query := url.Values{
		"module": {module},
		"action": {action},
	}
	for k, v := range params {
		query[k] = v
	}

	raw, err := conn.Fetch(ctx, query)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s.%s: %w", explorerapi.ErrMalformedResponse, module, action, err)
	}

	return out, nil
}
