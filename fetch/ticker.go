package fetch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dnldd/bazaar/shared"
	"github.com/go-co-op/gocron"
)

// IntervalTicker delivers ticks on a fixed interval, starting immediately.
//
// Ticks are not dropped: a tick waits for the receiver until the ticker is stopped.
type IntervalTicker struct {
	scheduler *gocron.Scheduler
	ticks     chan time.Time
	done      chan struct{}
	stopOnce  sync.Once
}

// Ensure the IntervalTicker implements the Ticker interface.
var _ shared.Ticker = (*IntervalTicker)(nil)

// NewIntervalTicker initializes and starts a new interval ticker.
func NewIntervalTicker(interval time.Duration) (*IntervalTicker, error) {
	if interval <= 0 {
		return nil, errors.New("tick interval must be positive")
	}

	t := &IntervalTicker{
		scheduler: gocron.NewScheduler(time.UTC),
		ticks:     make(chan time.Time),
		done:      make(chan struct{}),
	}

	_, err := t.scheduler.Every(interval).Do(t.tick)
	if err != nil {
		return nil, fmt.Errorf("scheduling tick job: %w", err)
	}

	t.scheduler.StartAsync()

	return t, nil
}

// tick delivers a tick to the receiver.
func (t *IntervalTicker) tick() {
	select {
	case t.ticks <- time.Now():
	case <-t.done:
	}
}

// C returns the channel ticks are delivered on.
func (t *IntervalTicker) C() <-chan time.Time {
	return t.ticks
}

// Stop halts tick delivery. It is safe to call more than once.
func (t *IntervalTicker) Stop() {
	t.stopOnce.Do(func() {
		// Release pending ticks before waiting on the scheduler.
		close(t.done)
		t.scheduler.Stop()
	})
}
