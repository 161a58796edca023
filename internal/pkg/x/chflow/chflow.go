// Package chflow holds small channel helpers: a receive bounded by a context
// and a send that never blocks.
package chflow

import "context"

// Receive waits for a value on ch until ctx ends. It reports false when ctx
// ended or ch was closed, returning the zero value.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// TrySend delivers data to ch only if the channel can accept it right away.
// It never blocks and reports whether the value was delivered.
func TrySend[T any](ch chan<- T, data T) bool {
	select {
	case ch <- data:
		return true
	default:
		return false
	}
}
