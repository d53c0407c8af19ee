package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CartOps counts cart mutations as seen by the GraphQL layer.
type CartOps struct {
	Added            Counter
	Removed          Counter
	UpstreamFailures Counter
	AdapterFailures  Counter
}

// Cart is the process-wide counter set served on /metrics.
var Cart = &CartOps{}

func (c *CartOps) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"cart_added_total":             c.Added.Load(),
		"cart_removed_total":           c.Removed.Load(),
		"cart_upstream_failures_total": c.UpstreamFailures.Load(),
		"cart_adapter_failures_total":  c.AdapterFailures.Load(),
	}
}
