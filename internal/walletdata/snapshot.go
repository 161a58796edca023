package walletdata

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FetchSnapshot implements Service.
//
// The four sub-fetches run concurrently and are independent: a failure in one
// does not cancel the others. Failed token balances are skipped.
func (s *service) FetchSnapshot(ctx context.Context, address portfolio.Address) (*portfolio.WalletSnapshot, error) {
	address = portfolio.NormalizeAddress(address.String())

	ctx, span := tracer.Start(ctx, "walletdata.FetchSnapshot", trace.WithAttributes(
		attribute.String("wallet.address", address.String()),
		attribute.String("provider.name", s.provider.Name()),
	))
	defer span.End()

	var (
		g errgroup.Group

		native                    portfolio.TokenBalance
		tokens                    []portfolio.TokenBalance
		normalTxs, tokenTxs       []portfolio.TransactionRecord
		nativeErr, tokensErr      error
		normalTxsErr, tokenTxsErr error
	)

	g.Go(func() error {
		native, nativeErr = s.NativeBalance(ctx, address)
		return nil
	})
	g.Go(func() error {
		tokens, tokensErr = s.TokenBalances(ctx, address)
		return nil
	})
	g.Go(func() error {
		normalTxs, normalTxsErr = s.TransactionHistory(ctx, address, snapshotPage, snapshotOffset)
		return nil
	})
	g.Go(func() error {
		tokenTxs, tokenTxsErr = s.TokenTransactionHistory(ctx, address, "", snapshotPage, snapshotOffset)
		return nil
	})
	_ = g.Wait()

	snapshot := &portfolio.WalletSnapshot{
		Address:            address,
		NativeBalance:      native,
		TokenBalances:      slices.Clip(slices.Clone(tokens)),
		RecentTransactions: mergeHistory(snapshotTransactions, normalTxs, tokenTxs),
		FetchedAt:          s.now(),
	}
	if snapshot.TokenBalances == nil {
		snapshot.TokenBalances = []portfolio.TokenBalance{}
	}

	if hard := errors.Join(nativeErr, normalTxsErr, tokenTxsErr); hard != nil {
		err := errors.Join(hard, tokensErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrDegradedSnapshot.Error())
		return snapshot, fmt.Errorf("%w: %w", ErrDegradedSnapshot, err)
	}

	if tokensErr != nil {
		span.RecordError(tokensErr)
		logger.Warn(ctx, "skipping token balances that failed to load",
			"wallet.address", address.String(),
			"error", tokensErr,
		)
		return snapshot, fmt.Errorf("%w: %w", ErrPartialSnapshot, tokensErr)
	}

	return snapshot, nil
}
