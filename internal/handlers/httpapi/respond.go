package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gabapcia/walletwatch/internal/changedetect"
	"github.com/gabapcia/walletwatch/internal/monitor"
	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/validator"
	"github.com/gabapcia/walletwatch/internal/walletregistry"
)

// ErrBadRequest is returned for request bodies or queries that cannot be read.
var ErrBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, validator.ErrValidationFailed),
		errors.Is(err, notification.ErrInvalidFilter),
		errors.Is(err, changedetect.ErrInvalidRule):
		return http.StatusBadRequest
	case errors.Is(err, monitor.ErrWalletNotWatched),
		errors.Is(err, walletregistry.ErrWalletNotFound),
		errors.Is(err, notification.ErrNotificationNotFound),
		errors.Is(err, changedetect.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, walletregistry.ErrWalletAlreadyRegistered),
		errors.Is(err, monitor.ErrAlreadyActive),
		errors.Is(err, monitor.ErrNoWatchedWallets):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(r.Context(), "failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", "http.path", r.URL.Path, "error", err)
	}

	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
