package resource

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// IOLimitBytesPerSec is the maximum write throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller accounts and limits write IO.
type Controller struct {
	cfg       Config
	ioLimiter *rate.Limiter // nil if unlimited
	written   atomic.Int64

	// sleep is swapped out by tests.
	sleep func(time.Duration)
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg, sleep: time.Sleep}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireIO blocks until bytes may be written and records them as written.
// Requests larger than the bucket are split into bucket-sized reservations.
func (c *Controller) AcquireIO(bytes int) {
	if c == nil || bytes <= 0 {
		return
	}
	c.written.Add(int64(bytes))
	if c.ioLimiter == nil {
		return
	}

	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		r := c.ioLimiter.ReserveN(time.Now(), n)
		if !r.OK() {
			return
		}
		if d := r.Delay(); d > 0 {
			c.sleep(d)
		}
		bytes -= n
	}
}

// Written returns the number of bytes acquired so far.
func (c *Controller) Written() int64 {
	if c == nil {
		return 0
	}
	return c.written.Load()
}

// IOLimit returns the configured byte rate (0 if unlimited).
func (c *Controller) IOLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.IOLimitBytesPerSec
}
