package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RunningStatus is the status string a fully operational service reports.
const RunningStatus = "running"

// PollerConfig configures the status poller.
type PollerConfig struct {
	// Interval between background probes.
	// Default: 10 seconds
	Interval time.Duration

	// ProbeTimeout bounds each individual probe.
	// Default: 3 seconds
	ProbeTimeout time.Duration
}

// Poller keeps a cached availability flag and status string fresh so call
// sites can consult them without probing the service directly. The flag
// means "the service's capability surface is currently reachable" and is
// independent of any circuit-breaker state layered on top of it.
type Poller struct {
	config PollerConfig
	probe  StatusFunc
	group  singleflight.Group

	mu        sync.RWMutex
	status    string
	hasStatus bool
	available bool
	last      Result

	stop      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPoller creates a poller over the given status probe. The poller is
// idle until Start is called; Available reports false and Status reports
// nothing until a probe succeeds or SetAvailable is called.
func NewPoller(probe StatusFunc, config PollerConfig) *Poller {
	// Apply defaults
	if config.Interval <= 0 {
		config.Interval = 10 * time.Second
	}
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = 3 * time.Second
	}

	return &Poller{
		config: config,
		probe:  probe,
		stop:   make(chan struct{}),
	}
}

// Start launches the background polling loop. Calling Start more than
// once is a no-op.
func (p *Poller) Start() {
	p.startOnce.Do(func() {
		go p.loop()
	})
}

// Stop halts the polling loop and releases its ticker. Stop is
// idempotent: double disposal is a no-op, not an error.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			_, _ = p.Refresh(context.Background())
		}
	}
}

// Refresh probes the service immediately and updates the cached state.
// Concurrent refreshes (including background ticks) collapse into a
// single in-flight probe.
func (p *Poller) Refresh(ctx context.Context) (string, error) {
	if p.probe == nil {
		return "", ErrNoProbe
	}

	v, err, _ := p.group.Do("status", func() (any, error) {
		probeCtx, cancel := context.WithTimeout(ctx, p.config.ProbeTimeout)
		defer cancel()

		start := time.Now()
		status, err := p.probe(probeCtx)
		p.record(status, err, time.Since(start))
		return status, err
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *Poller) record(status string, err error, took time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.available = false
		p.last = Unhealthy("status probe failed", err).WithDuration(took)
		return
	}

	p.available = true
	p.status = status
	p.hasStatus = true
	if status == RunningStatus {
		p.last = Healthy(status).WithDuration(took)
	} else {
		p.last = Degraded(status).WithDuration(took)
	}
}

// Available reports whether the service's capability surface was
// reachable at the last probe.
func (p *Poller) Available() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.available
}

// SetAvailable overrides the availability flag, e.g. when the surface is
// first bound or when binding fails before any probe has run.
func (p *Poller) SetAvailable(v bool) {
	p.mu.Lock()
	p.available = v
	p.mu.Unlock()
}

// Status returns the last status string the service reported. ok is
// false when no probe has ever succeeded.
func (p *Poller) Status() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.hasStatus
}

// Running reports whether the service is both reachable and reporting
// its running status.
func (p *Poller) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.available && p.status == RunningStatus
}

// Last returns the result of the most recent probe.
func (p *Poller) Last() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
