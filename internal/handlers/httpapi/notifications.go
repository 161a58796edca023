package httpapi

import (
	"net/http"

	"github.com/gabapcia/walletwatch/internal/notification"

	"github.com/go-chi/chi/v5"
)

type notificationsResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	Unread        int                         `json:"unread"`
}

func (h *handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	filter, err := notification.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, notificationsResponse{
		Notifications: h.sink.List(filter),
		Unread:        h.sink.UnreadCount(),
	})
}

func (h *handler) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.sink.MarkRead(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) markAllRead(w http.ResponseWriter, _ *http.Request) {
	h.sink.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearNotifications(w http.ResponseWriter, _ *http.Request) {
	h.sink.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}
