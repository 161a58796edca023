package config

import (
	"testing"
	"time"

	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/pkg/validator"
	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "ethereum", cfg.Network)
		assert.Equal(t, "etherscan", cfg.Provider.Name)
		assert.Equal(t, "https://api.etherscan.io/api", cfg.Provider.BaseURL)
		assert.Equal(t, 5, cfg.Provider.RateLimit)
		assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, 30*time.Second, cfg.PollInterval)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TokenInfoTTL)
		assert.Equal(t, 50, cfg.NotificationCap)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "walletwatch", cfg.ServiceName)
		assert.False(t, cfg.TelemetryEnabled)
		assert.False(t, cfg.UsesRedis())
		assert.Empty(t, cfg.ExtraTokenAddresses())
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		t.Setenv("WALLETWATCH_PROVIDER_API_KEY", "secret")
		t.Setenv("WALLETWATCH_PROVIDER_RATE_LIMIT", "2")
		t.Setenv("WALLETWATCH_POLL_INTERVAL", "5s")
		t.Setenv("WALLETWATCH_THRESHOLD_BALANCE_PCT", "2.5")
		t.Setenv("WALLETWATCH_REDIS_ADDR", "localhost:6379")
		t.Setenv("WALLETWATCH_REDIS_DB", "3")
		t.Setenv("WALLETWATCH_EXTRA_TOKENS", "0x6B175474E89094C44Da98b954EedeAC495271d0F,0x2260fac5e5542a773aa44fbcfedf7c193bc2c599")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "secret", cfg.Provider.APIKey)
		assert.Equal(t, 2, cfg.Provider.RateLimit)
		assert.Equal(t, 5*time.Second, cfg.PollInterval)
		assert.True(t, cfg.Threshold.BalancePercent.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, cfg.UsesRedis())
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, []portfolio.Address{
			"0x6b175474e89094c44da98b954eedeac495271d0f",
			"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599",
		}, cfg.ExtraTokenAddresses())
	})

	t.Run("should reject a non-positive rate limit", func(t *testing.T) {
		t.Setenv("WALLETWATCH_PROVIDER_RATE_LIMIT", "0")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Contains(t, err.Error(), "RATE_LIMIT")
	})

	t.Run("should reject an unparsable duration", func(t *testing.T) {
		t.Setenv("WALLETWATCH_POLL_INTERVAL", "soon")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("should reject a malformed extra token", func(t *testing.T) {
		t.Setenv("WALLETWATCH_EXTRA_TOKENS", "0x1234")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("should reject a negative threshold", func(t *testing.T) {
		t.Setenv("WALLETWATCH_THRESHOLD_TRANSFER_MIN", "-1")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("should reject a high percent below the base percent", func(t *testing.T) {
		t.Setenv("WALLETWATCH_THRESHOLD_BALANCE_HIGH_PCT", "1")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("should reject an unknown log level", func(t *testing.T) {
		t.Setenv("WALLETWATCH_LOG_LEVEL", "chatty")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("should reject a malformed webhook url", func(t *testing.T) {
		t.Setenv("WALLETWATCH_WEBHOOK_URL", "not a url")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Thresholds(t *testing.T) {
	t.Run("should match the engine defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		got, want := cfg.Thresholds(), changedetect.DefaultThresholds()
		assert.True(t, got.BalanceAbsolute.Equal(want.BalanceAbsolute))
		assert.True(t, got.BalancePercent.Equal(want.BalancePercent))
		assert.True(t, got.BalanceHighPercent.Equal(want.BalanceHighPercent))
		assert.True(t, got.TransferMinimum.Equal(want.TransferMinimum))
		assert.True(t, got.TransferHigh.Equal(want.TransferHigh))
	})
}

func TestConfig_TTLs(t *testing.T) {
	t.Run("should carry every cache lifetime", func(t *testing.T) {
		t.Setenv("WALLETWATCH_CACHE_PRICE_TTL", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		ttls := cfg.TTLs()
		assert.Equal(t, 30*time.Second, ttls.Balance)
		assert.Equal(t, 60*time.Second, ttls.Transaction)
		assert.Equal(t, 5*time.Minute, ttls.TokenInfo)
		assert.Equal(t, time.Minute, ttls.Price)
	})
}
