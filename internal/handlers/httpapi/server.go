package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
)

type server struct {
	srv *http.Server
}

// NewServer wraps handler in an HTTP server listening on addr.
func NewServer(addr string, handler http.Handler) *server {
	return &server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start serves in the background. Errors other than a clean shutdown are
// sent on the returned channel, which is closed once serving stops.
func (s *server) Start(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)

		logger.Info(ctx, "http api listening", "http.addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return errCh
}

// Shutdown stops accepting connections and waits for active requests.
func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
