package ratelimit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/gabapcia/walletwatch/internal/pkg/ratelimit")

	// waitsCounter counts how many times a caller had to wait for the window.
	waitsCounter, _ = meter.Int64Counter("walletwatch.ratelimit.waits",
		metric.WithDescription("Number of admissions that had to wait for the rate window to open"),
	)

	// waitDuration records how long each wait lasted.
	waitDuration, _ = meter.Float64Histogram("walletwatch.ratelimit.wait.duration",
		metric.WithDescription("Time spent waiting for the rate window to open"),
		metric.WithUnit("s"),
	)
)

// recordWait reports a rate-limit wait for provider.
func recordWait(ctx context.Context, provider string, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String("provider.name", provider))
	waitsCounter.Add(ctx, 1, attrs)
	waitDuration.Record(ctx, d.Seconds(), attrs)
}
