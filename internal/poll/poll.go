// Package poll provides the cancellable interval subscription detail views
// use to keep server-owned fields fresh without a push channel.
package poll

import (
	"context"
	"sync"
	"time"
)

// Start invokes tick every interval until the returned stop function is
// called or ctx is cancelled. The first tick fires after one interval, not
// immediately; views render their initially fetched data first.
//
// The context handed to tick is cancelled by stop, so an in-flight fetch is
// abandoned with its view instead of delivering a result to a torn-down
// screen. Stop is idempotent and safe to call from any goroutine.
func Start(ctx context.Context, interval time.Duration, tick func(context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	var once sync.Once
	stop = func() { once.Do(cancel) }

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				tick(ctx)
			}
		}
	}()

	return stop
}
