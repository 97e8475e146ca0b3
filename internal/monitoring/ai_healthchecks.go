package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorAnalyzerHealth probes the analyzer every interval until ctx is done
// and stores the latest result in healthy.
func MonitorAnalyzerHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			isHealthy := checker.HealthCheck(probeCtx)
			cancel()

			if healthy.Swap(isHealthy) != isHealthy {
				slog.Info("[HealthCheck] Analyzer health changed",
					slog.Bool("healthy", isHealthy))
			}
			if !isHealthy {
				slog.Warn("[HealthCheck] Analyzer is unhealthy")
			}
		}
	}
}
