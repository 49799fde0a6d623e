package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request and digest counters with atomics; it is safe
// for concurrent use from middleware and the background scheduler.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	digestsSent     uint64
	digestFailures  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordDigest counts one background digest delivery attempt.
func (c *Collector) RecordDigest(delivered bool) {
	if delivered {
		atomic.AddUint64(&c.digestsSent, 1)
		return
	}
	atomic.AddUint64(&c.digestFailures, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":  total,
		"errorsTotal":    atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":  avg,
		"digestsSent":    atomic.LoadUint64(&c.digestsSent),
		"digestFailures": atomic.LoadUint64(&c.digestFailures),
	}
}
