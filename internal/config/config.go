// Package config loads the process configuration from WALLETWATCH_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/pkg/validator"
	"github.com/gabapcia/walletwatch/internal/portfolio"
	"github.com/gabapcia/walletwatch/internal/walletdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Prefix is prepended to every variable name, e.g. WALLETWATCH_POLL_INTERVAL.
const Prefix = "WALLETWATCH"

// ErrInvalidConfig is returned by Load for any unreadable or invalid value.
var ErrInvalidConfig = errors.New("invalid configuration")

type ProviderConfig struct {
	Name      string        `envconfig:"NAME" default:"etherscan" validate:"required"`
	BaseURL   string        `envconfig:"BASE_URL" default:"https://api.etherscan.io/api" validate:"required,url"`
	APIKey    string        `envconfig:"API_KEY"`
	RateLimit int           `envconfig:"RATE_LIMIT" default:"5" validate:"gt=0"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
}

type CacheConfig struct {
	BalanceTTL     time.Duration `envconfig:"BALANCE_TTL" default:"30s" validate:"gt=0"`
	TransactionTTL time.Duration `envconfig:"TRANSACTION_TTL" default:"60s" validate:"gt=0"`
	TokenInfoTTL   time.Duration `envconfig:"TOKEN_INFO_TTL" default:"5m" validate:"gt=0"`
	PriceTTL       time.Duration `envconfig:"PRICE_TTL" default:"30s" validate:"gt=0"`
}

type ThresholdConfig struct {
	BalanceAbsolute    decimal.Decimal `envconfig:"BALANCE_ABS" default:"0.01" validate:"gte=0"`
	BalancePercent     decimal.Decimal `envconfig:"BALANCE_PCT" default:"5" validate:"gte=0"`
	BalanceHighPercent decimal.Decimal `envconfig:"BALANCE_HIGH_PCT" default:"20" validate:"gte=0"`
	TransferMinimum    decimal.Decimal `envconfig:"TRANSFER_MIN" default:"0.001" validate:"gte=0"`
	TransferHigh       decimal.Decimal `envconfig:"TRANSFER_HIGH" default:"1" validate:"gte=0"`
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0"`
}

// Config is the full process configuration.
type Config struct {
	LogLevel         string          `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Network          string          `envconfig:"NETWORK" default:"ethereum" validate:"required"`
	Provider         ProviderConfig  `envconfig:"PROVIDER"`
	PollInterval     time.Duration   `envconfig:"POLL_INTERVAL" default:"30s" validate:"gt=0"`
	Cache            CacheConfig     `envconfig:"CACHE"`
	NotificationCap  int             `envconfig:"NOTIFICATION_CAP" default:"50" validate:"gt=0"`
	Threshold        ThresholdConfig `envconfig:"THRESHOLD"`
	ExtraTokens      []string        `envconfig:"EXTRA_TOKENS" validate:"dive,eth_addr"`
	HTTPAddr         string          `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	Redis            RedisConfig     `envconfig:"REDIS"`
	WebhookURL       string          `envconfig:"WEBHOOK_URL" validate:"omitempty,url"`
	TelemetryEnabled bool            `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string          `envconfig:"SERVICE_NAME" default:"walletwatch" validate:"required"`
}

// Load reads and validates the configuration from the environment.
//
// Returns an error wrapping ErrInvalidConfig if a value cannot be parsed or
// fails validation.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.Threshold.BalanceHighPercent.LessThan(cfg.Threshold.BalancePercent) {
		return Config{}, fmt.Errorf("%w: THRESHOLD_BALANCE_HIGH_PCT (%s) is below THRESHOLD_BALANCE_PCT (%s)",
			ErrInvalidConfig, cfg.Threshold.BalanceHighPercent, cfg.Threshold.BalancePercent)
	}

	return cfg, nil
}

// Thresholds converts the threshold settings for the change detection engine.
func (c Config) Thresholds() changedetect.Thresholds {
	return changedetect.Thresholds{
		BalanceAbsolute:    c.Threshold.BalanceAbsolute,
		BalancePercent:     c.Threshold.BalancePercent,
		BalanceHighPercent: c.Threshold.BalanceHighPercent,
		TransferMinimum:    c.Threshold.TransferMinimum,
		TransferHigh:       c.Threshold.TransferHigh,
	}
}

// TTLs converts the cache settings for the wallet data client.
func (c Config) TTLs() walletdata.TTLs {
	return walletdata.TTLs{
		Balance:     c.Cache.BalanceTTL,
		Transaction: c.Cache.TransactionTTL,
		TokenInfo:   c.Cache.TokenInfoTTL,
		Price:       c.Cache.PriceTTL,
	}
}

// ExtraTokenAddresses returns the normalized EXTRA_TOKENS contracts.
func (c Config) ExtraTokenAddresses() []portfolio.Address {
	out := make([]portfolio.Address, 0, len(c.ExtraTokens))
	for _, token := range c.ExtraTokens {
		out = append(out, portfolio.NormalizeAddress(token))
	}
	return out
}

// UsesRedis reports whether the watch list is persisted in Redis.
func (c Config) UsesRedis() bool {
	return c.Redis.Addr != ""
}
