package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addWalletRequest struct {
	Address string `json:"address"`
	Label   string `json:"label"`
}

type renameWalletRequest struct {
	Label string `json:"label"`
}

func (h *handler) listWallets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.monitor.Wallets())
}

func (h *handler) addWallet(w http.ResponseWriter, r *http.Request) {
	var req addWalletRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	status, err := h.monitor.AddWallet(r.Context(), req.Address, req.Label)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, status)
}

func (h *handler) renameWallet(w http.ResponseWriter, r *http.Request) {
	var req renameWalletRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	status, err := h.monitor.RenameWallet(r.Context(), chi.URLParam(r, "address"), req.Label)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, status)
}

func (h *handler) removeWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.RemoveWallet(r.Context(), chi.URLParam(r, "address")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// walletSnapshot answers 204 while the wallet has no successful fetch yet.
func (h *handler) walletSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.monitor.Snapshot(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if snap == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, r, http.StatusOK, snap)
}

type monitoringResponse struct {
	State   string `json:"state"`
	Wallets int    `json:"wallets"`
	Unread  int    `json:"unread"`
}

func (h *handler) monitoringStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.monitoringState())
}

func (h *handler) monitoringState() monitoringResponse {
	return monitoringResponse{
		State:   string(h.monitor.State()),
		Wallets: len(h.monitor.Wallets()),
		Unread:  h.sink.UnreadCount(),
	}
}

// startMonitoring detaches the scheduler from the request so it outlives it.
func (h *handler) startMonitoring(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.Start(context.WithoutCancel(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.monitoringState())
}

func (h *handler) stopMonitoring(w http.ResponseWriter, r *http.Request) {
	h.monitor.Stop()
	writeJSON(w, r, http.StatusOK, h.monitoringState())
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.RefreshNow(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.monitor.Wallets())
}
