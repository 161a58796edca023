// Package httpapi exposes the monitoring core as a JSON API for a dashboard.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/monitor"
	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/ttlcache"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

// RuleStore manages alert rules.
type RuleStore interface {
	Add(rule changedetect.AlertRule) (changedetect.AlertRule, error)
	Remove(token string) error
	Toggle(token string) (changedetect.AlertRule, error)
	List() []changedetect.AlertRule
}

// MarketData serves token prices and the provider cache controls.
type MarketData interface {
	TokenPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
	ClearCache()
	CacheStats() ttlcache.Stats
}

type handler struct {
	monitor monitor.Service
	sink    notification.Sink
	rules   RuleStore
	data    MarketData
}

// NewRouter builds the API routes.
func NewRouter(m monitor.Service, sink notification.Sink, rules RuleStore, data MarketData) http.Handler {
	h := &handler{
		monitor: m,
		sink:    sink,
		rules:   rules,
		data:    data,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/wallets", func(r chi.Router) {
		r.Get("/", h.listWallets)
		r.Post("/", h.addWallet)
		r.Patch("/{address}", h.renameWallet)
		r.Delete("/{address}", h.removeWallet)
		r.Get("/{address}/snapshot", h.walletSnapshot)
	})

	r.Route("/monitoring", func(r chi.Router) {
		r.Get("/", h.monitoringStatus)
		r.Post("/start", h.startMonitoring)
		r.Post("/stop", h.stopMonitoring)
		r.Post("/refresh", h.refresh)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Delete("/", h.clearNotifications)
		r.Post("/read", h.markAllRead)
		r.Post("/{id}/read", h.markRead)
	})

	r.Route("/rules", func(r chi.Router) {
		r.Get("/", h.listRules)
		r.Post("/", h.addRule)
		r.Delete("/{token}", h.removeRule)
		r.Post("/{token}/toggle", h.toggleRule)
	})

	r.Get("/prices", h.prices)
	r.Get("/cache/stats", h.cacheStats)
	r.Delete("/cache", h.clearCache)

	return r
}
