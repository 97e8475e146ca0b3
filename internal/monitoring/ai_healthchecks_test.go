package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeChecker) HealthCheck(context.Context) bool {
	f.calls.Add(1)
	return f.healthy.Load()
}

func TestMonitorAnalyzerHealth_TracksChecker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &fakeChecker{}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	done := make(chan struct{})
	go func() {
		MonitorAnalyzerHealth(ctx, checker, healthy, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return !healthy.Load() }, time.Second, time.Millisecond)

	checker.healthy.Store(true)
	assert.Eventually(t, healthy.Load, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	assert.Positive(t, checker.calls.Load())
}
