package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

// DefaultInterval is the scan period.
const DefaultInterval = time.Minute

// ScanFunc is the work a Clock runs each tick.
type ScanFunc func(ctx context.Context, now time.Time) ([]domain.Assignment, error)

// Clock runs a scan immediately on Start and then once per interval until
// Stop is called or the Start context is cancelled.
type Clock struct {
	scan     ScanFunc
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock builds a stopped clock. A non-positive interval means
// DefaultInterval; a nil now means time.Now.
func NewClock(scan ScanFunc, interval time.Duration, now func() time.Time, logger *slog.Logger) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{
		scan:     scan,
		interval: interval,
		now:      now,
		logger:   logger,
	}
}

// Start performs one synchronous scan and then starts ticking in the
// background. Calling Start on a running clock does nothing.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	c.tick(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(runCtx, c.done)

	c.logger.Info("reminder clock started", "interval", c.interval)
}

// Stop halts the clock and waits for an in-flight scan to finish.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
	c.logger.Info("reminder clock stopped")
}

func (c *Clock) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

func (c *Clock) tick(ctx context.Context) {
	if _, err := c.scan(ctx, c.now()); err != nil {
		c.logger.Warn("reminder scan failed", "error", err)
	}
}
