package etherscan

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/transport/explorerapi"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletdata"
)

const (
	startBlock = "0"
	endBlock   = "99999999"
	sortOrder  = "desc"
)

// transaction is one row of the account.txlist and account.tokentx results.
// Fields that only one of the two endpoints returns are left empty by the other.
type transaction struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	TxReceiptStatus string `json:"txreceipt_status"`
}

// receiptStatus maps txreceipt_status to a portfolio.Status.
func receiptStatus(s string) portfolio.Status {
	switch s {
	case "1":
		return portfolio.StatusSuccess
	case "0":
		return portfolio.StatusFailed
	default:
		return portfolio.StatusPending
	}
}

// toRaw converts a result row. native selects txlist semantics.
func (t transaction) toRaw(native bool) (walletdata.RawTransaction, error) {
	block, err := strconv.ParseUint(t.BlockNumber, 10, 64)
	if err != nil {
		return walletdata.RawTransaction{}, fmt.Errorf("%w: block number %q of %s", explorerapi.ErrMalformedResponse, t.BlockNumber, t.Hash)
	}

	ts, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return walletdata.RawTransaction{}, fmt.Errorf("%w: timestamp %q of %s", explorerapi.ErrMalformedResponse, t.TimeStamp, t.Hash)
	}

	raw := walletdata.RawTransaction{
		Hash:        t.Hash,
		From:        portfolio.NormalizeAddress(t.From),
		To:          portfolio.NormalizeAddress(t.To),
		Value:       t.Value,
		Timestamp:   time.Unix(ts, 0).UTC(),
		BlockNumber: block,
	}

	if native {
		raw.Status = receiptStatus(t.TxReceiptStatus)
		return raw, nil
	}

	raw.ContractAddress = portfolio.NormalizeAddress(t.ContractAddress)
	raw.TokenSymbol = t.TokenSymbol
	raw.TokenName = t.TokenName
	raw.TokenDecimals = parseDecimals(t.TokenDecimal)
	raw.Status = portfolio.StatusSuccess
	return raw, nil
}

// listTransactions runs a paged history query and converts its rows. An empty
// history is not an error.
func (c *client) listTransactions(ctx context.Context, action string, params url.Values, native bool) ([]walletdata.RawTransaction, error) {
	rows, err := fetch[[]transaction](ctx, c.conn, "account", action, params)
	if errors.Is(err, explorerapi.ErrNoRecordsFound) {
		return []walletdata.RawTransaction{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]walletdata.RawTransaction, 0, len(rows))
	for _, row := range rows {
		raw, err := row.toRaw(native)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}

	return out, nil
}

// NormalTransactions implements walletdata.Provider using account.txlist.
func (c *client) NormalTransactions(ctx context.Context, address portfolio.Address, page, offset int) ([]walletdata.RawTransaction, error) {
	return c.listTransactions(ctx, "txlist", url.Values{
		"address":    {address.String()},
		"startblock": {startBlock},
		"endblock":   {endBlock},
		"page":       {strconv.Itoa(page)},
		"offset":     {strconv.Itoa(offset)},
		"sort":       {sortOrder},
	}, true)
}

// TokenTransfers implements walletdata.Provider using account.tokentx.
func (c *client) TokenTransfers(ctx context.Context, address, contract portfolio.Address, page, offset int) ([]walletdata.RawTransaction, error) {
	params := url.Values{
		"address": {address.String()},
		"page":    {strconv.Itoa(page)},
		"offset":  {strconv.Itoa(offset)},
		"sort":    {sortOrder},
	}
	if contract != "" {
		params.Set("contractaddress", contract.String())
	}

	return c.listTransactions(ctx, "tokentx", params, false)
}
