package notification

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/gabapcia/walletwatch/internal/notification")

	emittedCounter, _ = meter.Int64Counter("walletwatch.notification.emitted",
		metric.WithDescription("Number of notifications stored, by type and severity"),
	)
)

func recordEmitted(ctx context.Context, n Notification) {
	emittedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("notification.type", string(n.Type)),
		attribute.String("notification.severity", string(n.Severity)),
	))
}
