// Package app runs the monitoring core as one long-lived process. It restores
// the persisted watch list, starts the scheduler when there is something to
// watch, forwards notifications to an optional dispatcher and serves the HTTP
// API.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/walletwatch/internal/monitor"
	"github.com/gabapcia/walletwatch/internal/notification"
	"github.com/gabapcia/walletwatch/internal/pkg/logger"
)

// ErrServiceAlreadyStarted is returned if Start is called while running.
var ErrServiceAlreadyStarted = errors.New("service already started")

// HTTPServer is the inbound API server.
type HTTPServer interface {
	// Start serves in the background. Serving errors arrive on the returned
	// channel, which is closed once serving stops.
	Start(ctx context.Context) <-chan error

	// Shutdown stops serving and waits for active requests.
	Shutdown(ctx context.Context) error
}

// Service is the process lifecycle.
type Service interface {
	// Start restores the watch list and launches every background routine.
	//
	// Returns ErrServiceAlreadyStarted if the service is running, or the error
	// that prevented the watch list from loading.
	Start(ctx context.Context) error

	// Errors reports fatal serving errors of a started service.
	Errors() <-chan error

	// Close stops the scheduler, drains the forwarder and shuts the HTTP
	// server down within ctx. It is safe to call on a service never started.
	Close(ctx context.Context) error
}

type closeFunc func(ctx context.Context) error

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc
	errCh     <-chan error

	monitor    monitor.Service
	sink       notification.Sink
	dispatcher notification.Dispatcher
	server     HTTPServer
}

var _ Service = (*service)(nil)

// Option configures the service.
type Option func(*service)

// WithDispatcher forwards every stored notification to d.
func WithDispatcher(d notification.Dispatcher) Option {
	return func(s *service) {
		s.dispatcher = d
	}
}

// New wires the scheduler, its notification sink and the API server.
func New(m monitor.Service, sink notification.Sink, server HTTPServer, opts ...Option) *service {
	s := &service{
		monitor: m,
		sink:    sink,
		server:  server,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	if _, err := s.monitor.Restore(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)

	if len(s.monitor.Wallets()) > 0 {
		if err := s.monitor.Start(ctx); err != nil && !errors.Is(err, monitor.ErrAlreadyActive) {
			cancel()
			return err
		}
	} else {
		logger.Info(ctx, "watch list is empty, monitoring stays idle until a wallet is added")
	}

	var forwarded <-chan struct{}
	if s.dispatcher != nil {
		forwarded = notification.StartForwarding(ctx, s.sink, s.dispatcher)
	} else {
		done := make(chan struct{})
		close(done)
		forwarded = done
	}

	s.errCh = s.server.Start(ctx)

	s.closeFunc = func(shutdownCtx context.Context) error {
		s.monitor.Stop()
		err := s.server.Shutdown(shutdownCtx)
		cancel()
		<-forwarded
		return err
	}
	s.isStarted = true
	return nil
}

// Errors implements Service.
func (s *service) Errors() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errCh
}

// Close implements Service.
func (s *service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.closeFunc != nil {
		err = s.closeFunc(ctx)
	}

	s.closeFunc = nil
	s.isStarted = false
	return err
}
