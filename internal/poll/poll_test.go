package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	stop := Start(context.Background(), 5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	stop()

	// No further ticks after stop (allow the in-flight one to drain).
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Fatalf("poller ticked after stop: %d -> %d", after, got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	stop := Start(context.Background(), time.Millisecond, func(context.Context) {})
	stop()
	stop()
	stop()
}

func TestTickContextCancelledByStop(t *testing.T) {
	entered := make(chan struct{})
	cancelled := make(chan struct{})
	stop := Start(context.Background(), time.Millisecond, func(ctx context.Context) {
		select {
		case <-entered:
			return // only exercise the first tick
		default:
		}
		close(entered)
		select {
		case <-ctx.Done():
			close(cancelled)
		case <-time.After(2 * time.Second):
		}
	})

	<-entered
	stop()
	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected tick context cancelled by stop")
	}
}

func TestParentContextStopsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int64
	_ = Start(ctx, 5*time.Millisecond, func(context.Context) { ticks.Add(1) })

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Fatalf("poller survived parent cancellation: %d -> %d", after, got)
	}
}
