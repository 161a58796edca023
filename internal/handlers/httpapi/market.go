package httpapi

import (
	"fmt"
	"net/http"
	"strings"
)

func (h *handler) prices(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	for _, s := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	if len(symbols) == 0 {
		writeError(w, r, fmt.Errorf("%w: symbols query parameter is required", ErrBadRequest))
		return
	}

	prices, err := h.data.TokenPrices(r.Context(), symbols)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, prices)
}

func (h *handler) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.data.CacheStats())
}

func (h *handler) clearCache(w http.ResponseWriter, _ *http.Request) {
	h.data.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}
