package etherscan

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletdata"
)

// defaultDecimals is assumed when a contract does not report its decimals.
const defaultDecimals int32 = 18

// tokenInfo is one row of the token.tokeninfo result.
type tokenInfo struct {
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	Symbol          string `json:"symbol"`
	Divisor         string `json:"divisor"`
}

// parseDecimals reads a decimal count, falling back to defaultDecimals.
func parseDecimals(s string) int32 {
	d, err := strconv.ParseInt(s, 10, 32)
	if err != nil || d <= 0 {
		return defaultDecimals
	}
	return int32(d)
}

// TokenInfo implements walletdata.Provider using token.tokeninfo.
func (c *client) TokenInfo(ctx context.Context, contract portfolio.Address) (walletdata.TokenInfo, error) {
	rows, err := fetch[[]tokenInfo](ctx, c.conn, "token", "tokeninfo", url.Values{
		"contractaddress": {contract.String()},
	})
	if err != nil {
		return walletdata.TokenInfo{}, err
	}

	if len(rows) == 0 {
		return walletdata.TokenInfo{Decimals: defaultDecimals}, nil
	}

	return walletdata.TokenInfo{
		Symbol:   rows[0].Symbol,
		Name:     rows[0].TokenName,
		Decimals: parseDecimals(rows[0].Divisor),
	}, nil
}
