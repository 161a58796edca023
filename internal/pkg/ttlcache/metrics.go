package ttlcache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/gabapcia/walletwatch/internal/pkg/ttlcache")

	lookupsCounter, _ = meter.Int64Counter("walletwatch.cache.lookups",
		metric.WithDescription("Number of cache lookups partitioned by hit or miss"),
	)

	hitAttrs  = metric.WithAttributes(attribute.String("result", "hit"))
	missAttrs = metric.WithAttributes(attribute.String("result", "miss"))
)

func recordLookup(ctx context.Context, hit bool) {
	if hit {
		lookupsCounter.Add(ctx, 1, hitAttrs)
		return
	}
	lookupsCounter.Add(ctx, 1, missAttrs)
}
