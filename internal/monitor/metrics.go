package monitor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/gabapcia/walletwatch/internal/monitor")

	tickCounter, _ = meter.Int64Counter("walletwatch.monitor.ticks",
		metric.WithDescription("Number of completed monitoring ticks"),
	)

	tickDuration, _ = meter.Float64Histogram("walletwatch.monitor.tick.duration",
		metric.WithDescription("Time to fetch and diff every watched wallet"),
		metric.WithUnit("s"),
	)

	fetchFailureCounter, _ = meter.Int64Counter("walletwatch.monitor.fetch.failures",
		metric.WithDescription("Number of wallet fetches that failed during a tick"),
	)
)

func recordTick(ctx context.Context, d time.Duration, failures int) {
	tickCounter.Add(ctx, 1)
	tickDuration.Record(ctx, d.Seconds())
	if failures > 0 {
		fetchFailureCounter.Add(ctx, int64(failures))
	}
}
