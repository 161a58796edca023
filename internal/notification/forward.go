package notification

import (
	"context"

	"github.com/gabapcia/walletwatch/internal/pkg/logger"
	"github.com/gabapcia/walletwatch/internal/pkg/x/chflow"
)

// Dispatcher delivers a stored notification to an external destination.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// StartForwarding subscribes to s and hands every new notification to d until
// ctx ends. The returned channel is closed once forwarding has stopped.
//
// Dispatch failures are logged and do not stop the loop.
func StartForwarding(ctx context.Context, s Sink, d Dispatcher) <-chan struct{} {
	feed := s.Subscribe(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			n, ok := chflow.Receive(ctx, feed)
			if !ok {
				return
			}

			if err := d.Dispatch(ctx, n); err != nil {
				logger.Error(ctx, "failed to dispatch notification",
					"notification.id", n.ID,
					"notification.type", n.Type,
					"error", err,
				)
			}
		}
	}()

	return done
}
