package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/synergysphere/synergyboard/internal/domain"
)

// FaultInjector simulates the latency and random failures of the
// persistence boundary. It runs before every store operation; a
// non-nil error aborts the operation.
type FaultInjector interface {
	Before(ctx context.Context, op string) error
}

// NopInjector performs no simulation. Used in tests and when fault
// injection is disabled.
type NopInjector struct{}

// Before implements FaultInjector.
func (NopInjector) Before(context.Context, string) error { return nil }

// RandomInjector delays each operation by a fixed latency and fails a
// configurable fraction of operations with ErrStorageUnavailable. The
// random source is injected explicitly so runs are reproducible.
type RandomInjector struct {
	mu      sync.Mutex
	rng     *rand.Rand
	rate    float64
	latency time.Duration
}

// NewRandomInjector creates a RandomInjector. rate is clamped to
// [0, 1]; a zero seed still yields a valid (if predictable) source.
func NewRandomInjector(rate float64, latency time.Duration, seed int64) *RandomInjector {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &RandomInjector{
		rng:     rand.New(rand.NewSource(seed)),
		rate:    rate,
		latency: latency,
	}
}

// Before implements FaultInjector. The latency wait honors context
// cancellation, so an abandoned in-flight call returns ctx.Err()
// instead of blocking.
func (f *RandomInjector) Before(ctx context.Context, op string) error {
	if f.latency > 0 {
		timer := time.NewTimer(f.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	f.mu.Lock()
	fail := f.rng.Float64() < f.rate
	f.mu.Unlock()

	if fail {
		return domain.ErrStorageUnavailable
	}
	return nil
}
