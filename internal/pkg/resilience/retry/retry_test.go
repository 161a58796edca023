package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(opts ...Option) Retry {
	return New(append([]Option{WithDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}, opts...)...)
}

func TestRetry_Execute(t *testing.T) {
	t.Run("should run a successful operation once", func(t *testing.T) {
		calls := 0

		err := fast().Execute(t.Context(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry until the operation succeeds", func(t *testing.T) {
		calls := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls < 2 {
				return errors.New("temporary")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should return the last error once attempts run out", func(t *testing.T) {
		calls := 0
		persistent := errors.New("persistent")

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			return persistent
		})

		assert.ErrorIs(t, err, persistent)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop when the error is not retryable", func(t *testing.T) {
		calls := 0
		fatal := errors.New("bad request")

		err := fast(WithAttempts(5), WithRetryIf(func(err error) bool {
			return !errors.Is(err, fatal)
		})).Execute(t.Context(), func() error {
			calls++
			return fatal
		})

		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("should report failed attempts in order", func(t *testing.T) {
		var attempts []uint

		_ = fast(WithAttempts(3), WithOnRetry(func(attempt uint, err error) {
			attempts = append(attempts, attempt)
		})).Execute(t.Context(), func() error {
			return errors.New("temporary")
		})

		require.GreaterOrEqual(t, len(attempts), 2)
		assert.Equal(t, []uint{0, 1}, attempts[:2])
	})

	t.Run("should stop waiting when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := New(WithAttempts(5), WithDelay(200*time.Millisecond)).Execute(ctx, func() error {
			calls++
			return errors.New("temporary")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestNew(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		r, ok := New().(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(3), r.cfg.attempts)
		assert.Equal(t, time.Second, r.cfg.delay)
		assert.Equal(t, 5*time.Second, r.cfg.maxDelay)
	})
}
