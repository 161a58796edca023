package httpapi

import (
	"net/http"

	"github.com/gabapcia/walletwatch/internal/changedetect"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type addRuleRequest struct {
	Token             string          `json:"token"`
	AbsoluteThreshold decimal.Decimal `json:"absoluteThreshold"`
	PercentThreshold  decimal.Decimal `json:"percentThreshold"`
}

func (h *handler) listRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.rules.List())
}

func (h *handler) addRule(w http.ResponseWriter, r *http.Request) {
	var req addRuleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rule, err := h.rules.Add(changedetect.AlertRule{
		Token:             req.Token,
		AbsoluteThreshold: req.AbsoluteThreshold,
		PercentThreshold:  req.PercentThreshold,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, rule)
}

func (h *handler) removeRule(w http.ResponseWriter, r *http.Request) {
	if err := h.rules.Remove(chi.URLParam(r, "token")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) toggleRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.rules.Toggle(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, rule)
}
