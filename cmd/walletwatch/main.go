package main

import (
	"context"
	"os"

	"github.com/gabapcia/walletwatch/internal/app"
	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/config"
	"github.com/gabapcia/walletwatch/internal/handlers/cli"
	"github.com/gabapcia/walletwatch/internal/handlers/httpapi"
	"github.com/gabapcia/walletwatch/internal/infra/blockchain/etherscan"
	"github.com/gabapcia/walletwatch/internal/infra/notify/webhook"
	"github.com/gabapcia/walletwatch/internal/infra/pricing/static"
	"github.com/gabapcia/walletwatch/internal/infra/storage/memory"
	redisstorage "github.com/gabapcia/walletwatch/internal/infra/storage/redis"
	"github.com/gabapcia/walletwatch/internal/monitor"
	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/ratelimit"
	"github.com/gabapcia/walletwatch/internal/pkg/telemetry"
	"github.com/gabapcia/walletwatch/internal/pkg/transport/explorerapi"
	transporthttp "github.com/gabapcia/walletwatch/internal/pkg/transport/http"
	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"
	"github.com/gabapcia/walletwatch/internal/walletdata"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init("info")
		logger.Fatal(ctx, "failed to load configuration", "error", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			_ = logger.Init(cfg.LogLevel)
			logger.Fatal(ctx, "failed to initialize telemetry", "error", err)
		}
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Error(ctx, "failed to flush telemetry", "error", err)
			}
		}()
	}

	// after telemetry so the log bridge picks up the logger provider
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Fatal(ctx, "failed to initialize logger", "error", err)
	}
	defer logger.Sync()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "walletwatch exited with an error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	var storage walletregistry.WalletStorage = memory.NewWalletStorage()
	if cfg.UsesRedis() {
		client, err := redisstorage.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()

		storage = client
	} else {
		logger.Warn(ctx, "no Redis address configured, the watch list will not survive a restart")
	}
	registry := walletregistry.New(storage)

	limiter, err := ratelimit.New(cfg.Provider.RateLimit)
	if err != nil {
		return err
	}

	conn := explorerapi.NewClient(cfg.Provider.BaseURL,
		explorerapi.WithAPIKey(cfg.Provider.APIKey),
		explorerapi.WithHTTPClient(transporthttp.NewClient(
			transporthttp.WithTimeout(cfg.Provider.Timeout),
			transporthttp.WithRetryMax(0),
		)),
	)

	data := walletdata.New(etherscan.NewClient(cfg.Provider.Name, conn), limiter, ttlcache.New(),
		walletdata.WithTTLs(cfg.TTLs()),
		walletdata.WithExtraTokens(cfg.ExtraTokenAddresses()...),
		walletdata.WithPriceSource(static.New(nil)),
	)

	rules := changedetect.NewRuleSet()
	engine := changedetect.New(
		changedetect.WithThresholds(cfg.Thresholds()),
		changedetect.WithRules(rules),
	)

	sink := notification.New(notification.WithCapacity(cfg.NotificationCap))

	m := monitor.New(data, registry, engine, sink,
		monitor.WithInterval(cfg.PollInterval),
		monitor.WithNetwork(cfg.Network),
	)

	var opts []app.Option
	if cfg.WebhookURL != "" {
		opts = append(opts, app.WithDispatcher(webhook.New(cfg.WebhookURL)))
	}

	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(m, sink, rules, data))

	return cli.Run(ctx, cfg.Network, registry, app.New(m, sink, server, opts...))
}
