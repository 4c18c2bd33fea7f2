package reminder

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

func countingScan(calls *atomic.Int32, err error) ScanFunc {
	return func(context.Context, time.Time) ([]domain.Assignment, error) {
		calls.Add(1)
		return nil, err
	}
}

func TestClock_ScansImmediatelyOnStart(t *testing.T) {
	var calls atomic.Int32
	c := NewClock(countingScan(&calls, nil), time.Hour, nil, discard)

	c.Start(context.Background())
	defer c.Stop()

	assert.Equal(t, int32(1), calls.Load())
}

func TestClock_TicksUntilStopped(t *testing.T) {
	var calls atomic.Int32
	c := NewClock(countingScan(&calls, errors.New("store unavailable")), 5*time.Millisecond, nil, discard)

	c.Start(context.Background())
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	c.Stop()
	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestClock_StartIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	c := NewClock(countingScan(&calls, nil), time.Hour, nil, discard)

	c.Start(context.Background())
	c.Start(context.Background())
	defer c.Stop()

	assert.Equal(t, int32(1), calls.Load())
}

func TestClock_StopsOnContextCancel(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	c := NewClock(countingScan(&calls, nil), 5*time.Millisecond, nil, discard)

	c.Start(ctx)
	cancel()
	c.Stop()

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestClock_PassesInjectedTime(t *testing.T) {
	want := time.Date(2024, 6, 1, 8, 59, 30, 0, time.UTC)
	var got time.Time
	c := NewClock(func(_ context.Context, now time.Time) ([]domain.Assignment, error) {
		got = now
		return nil, nil
	}, time.Hour, func() time.Time { return want }, discard)

	c.Start(context.Background())
	c.Stop()

	assert.Equal(t, want, got)
}
