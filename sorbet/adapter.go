package sorbet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/sorbetbridge/cache"
	"github.com/jonwraymond/sorbetbridge/health"
	"github.com/jonwraymond/sorbetbridge/observe"
	"github.com/jonwraymond/sorbetbridge/resilience"
	"github.com/jonwraymond/sorbetbridge/ruby"
)

// options holds construction-time settings collected from Option values.
type options struct {
	binder       Binder
	observer     observe.Observer
	callTimeout  time.Duration
	pollInterval time.Duration
	breaker      resilience.BreakerConfig
	store        cache.Cache
	policy       cache.Policy
}

// Option configures an Adapter.
type Option func(*options)

// WithBinder sets the function that locates the capability surface during
// Initialize. Without a binder the adapter stays permanently unavailable.
func WithBinder(b Binder) Option {
	return func(o *options) { o.binder = b }
}

// WithObserver wires telemetry: calls are traced, counted, and logged
// through the observer's providers.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithCallTimeout overrides the per-call deadline. Default: 5 seconds.
func WithCallTimeout(d time.Duration) Option {
	return func(o *options) { o.callTimeout = d }
}

// WithPollInterval overrides the background status poll interval.
// Default: 10 seconds.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithBreakerConfig overrides the circuit breaker configuration. The
// Availability callback is supplied by the adapter unless set explicitly.
func WithBreakerConfig(cfg resilience.BreakerConfig) Option {
	return func(o *options) { o.breaker = cfg }
}

// WithCache sets the result cache and its TTL policy. Passing a nil cache
// disables memoization.
func WithCache(c cache.Cache, policy cache.Policy) Option {
	return func(o *options) {
		o.store = c
		o.policy = policy
	}
}

// Adapter is the resilient front door to an optional Sorbet service.
// Query methods never return errors: every failure mode degrades to the
// query's empty result while the breaker, guard, and poller decide when
// the service is worth talking to again.
type Adapter struct {
	binder Binder

	breaker *resilience.Breaker
	guard   *resilience.Guard
	poller  *health.Poller
	retry   *resilience.Retry

	store  cache.Cache
	keyer  cache.Keyer
	policy cache.Policy

	inst   *observe.Instrumenter
	logger observe.Logger

	mu      sync.RWMutex
	surface CapabilitySurface

	lastKind    atomic.Int32
	disposeOnce sync.Once
}

// NewAdapter creates an adapter. The adapter is inert until Initialize
// binds a surface; queries issued before that return empty results.
func NewAdapter(opts ...Option) (*Adapter, error) {
	o := options{policy: cache.DefaultPolicy()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Adapter{
		binder: o.binder,
		policy: o.policy,
		keyer:  cache.NewDocKeyer(),
		inst:   observe.NopInstrumenter(),
		logger: observe.NopLogger(),
	}

	if o.store != nil {
		a.store = o.store
	} else if o.policy.ShouldCache() {
		a.store = cache.NewMemoryCache(o.policy)
	}

	if o.observer != nil {
		inst, err := observe.NewInstrumenterFromObserver(o.observer)
		if err != nil {
			return nil, err
		}
		a.inst = inst
		a.logger = o.observer.Logger()
	}

	a.poller = health.NewPoller(a.probeStatus, health.PollerConfig{Interval: o.pollInterval})

	bcfg := o.breaker
	if bcfg.Availability == nil {
		bcfg.Availability = a.poller.Available
	}
	userOnFailure := bcfg.OnFailure
	userOnTrip := bcfg.OnTrip
	bcfg.OnFailure = func(kind resilience.FailureKind, operation string, failures int) {
		a.lastKind.Store(int32(kind))
		a.logger.Debug(context.Background(), "sorbet failure recorded",
			observe.Field{Key: "kind", Value: kind.String()},
			observe.Field{Key: "operation", Value: operation},
			observe.Field{Key: "failures", Value: failures},
		)
		if userOnFailure != nil {
			userOnFailure(kind, operation, failures)
		}
	}
	bcfg.OnTrip = func(until time.Time) {
		kind := resilience.FailureKind(a.lastKind.Load())
		a.inst.Trip(context.Background(), kind.String())
		a.logger.Warn(context.Background(), "sorbet calls suspended",
			observe.Field{Key: "kind", Value: kind.String()},
			observe.Field{Key: "until", Value: until.Format(time.RFC3339)},
		)
		if userOnTrip != nil {
			userOnTrip(until)
		}
	}
	a.breaker = resilience.NewBreaker(bcfg)
	a.guard = resilience.NewGuard(a.breaker, resilience.GuardConfig{Timeout: o.callTimeout})
	a.retry = resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		Jitter:       true,
	})

	return a, nil
}

// Initialize binds the capability surface and starts status polling.
// It never returns an error: the integration is optional, so a binding
// failure is logged, the adapter stays unavailable, and every query
// degrades to its empty result.
func (a *Adapter) Initialize(ctx context.Context) {
	if a.binder == nil {
		a.logger.Info(ctx, "sorbet integration disabled",
			observe.Field{Key: "reason", Value: ErrNoBinder.Error()})
		return
	}

	err := a.retry.Execute(ctx, func(ctx context.Context) error {
		s, err := a.binder(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			return ErrNilSurface
		}
		a.mu.Lock()
		a.surface = s
		a.mu.Unlock()
		return nil
	})
	if err != nil {
		a.poller.SetAvailable(false)
		a.logger.Warn(ctx, "sorbet surface binding failed",
			observe.Field{Key: "error", Value: err.Error()})
		return
	}

	a.poller.SetAvailable(true)
	a.poller.Start()
	if _, err := a.poller.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "initial status probe failed",
			observe.Field{Key: "error", Value: err.Error()})
	}
}

func (a *Adapter) currentSurface() CapabilitySurface {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.surface
}

func (a *Adapter) probeStatus(ctx context.Context) (string, error) {
	s := a.currentSurface()
	if s == nil {
		return "", ErrNotBound
	}
	return s.Status(ctx)
}

// Available reports whether queries are currently worth issuing: no
// cool-down in effect and the last status probe reached the service.
func (a *Adapter) Available() bool {
	return a.breaker.Available()
}

// Running reports whether the service is available and reporting its
// fully operational status.
func (a *Adapter) Running() bool {
	return a.breaker.Available() && a.poller.Running()
}

// Status returns the last status string the service reported. ok is
// false when no surface is bound or no probe has succeeded yet.
func (a *Adapter) Status() (string, bool) {
	if a.currentSurface() == nil {
		return "", false
	}
	return a.poller.Status()
}

// call runs one guarded query against the bound surface. The bool result
// is false whenever the caller should fall back to the query's empty
// result: unbound surface, breaker open, timeout, or service error.
func call[T any](ctx context.Context, a *Adapter, operation string, uri ruby.DocumentURI, fn func(context.Context, CapabilitySurface) (T, error)) (T, bool) {
	var zero T

	s := a.currentSurface()
	if s == nil || !a.breaker.Available() {
		return zero, false
	}

	ctx, done := a.inst.Begin(ctx, observe.OpMeta{Operation: operation, URI: string(uri)})

	v, ok, err := resilience.Call(ctx, a.guard, operation, func(ctx context.Context) (T, error) {
		return fn(ctx, s)
	})
	switch {
	case err != nil:
		// A cancelled caller is not a service failure: the guard
		// propagates it without breaker feedback and so must the facade.
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			done(err)
			return zero, false
		}
		a.breaker.RecordFailure(resilience.Classify(err), operation)
		done(err)
		return zero, false
	case !ok:
		// Timeout: the guard already recorded the failure.
		done(resilience.ErrTimeout)
		return zero, false
	default:
		done(nil)
		return v, true
	}
}

// Definition resolves definition locations for the symbol at pos.
// Returns an empty slice when the service is unavailable or the call
// fails; locations pointing at synthetic resources are filtered out.
func (a *Adapter) Definition(ctx context.Context, doc ruby.Document, pos ruby.Position) []ruby.Location {
	locs, ok := call(ctx, a, "definition", doc.URI, func(ctx context.Context, s CapabilitySurface) ([]ruby.Location, error) {
		return s.DefinitionLocations(ctx, doc, pos)
	})
	if !ok {
		return nil
	}
	return filterAccessible(locs)
}

// References resolves reference locations for the symbol at pos, with
// the same degradation contract as Definition.
func (a *Adapter) References(ctx context.Context, doc ruby.Document, pos ruby.Position) []ruby.Location {
	locs, ok := call(ctx, a, "references", doc.URI, func(ctx context.Context, s CapabilitySurface) ([]ruby.Location, error) {
		return s.ReferenceLocations(ctx, doc, pos)
	})
	if !ok {
		return nil
	}
	return filterAccessible(locs)
}

// TypeInfo reports the static type at pos, or nil when the service is
// unavailable, the call fails, or the service has nothing to say.
// Results are memoized for a couple of seconds keyed by document version.
func (a *Adapter) TypeInfo(ctx context.Context, doc ruby.Document, pos ruby.Position) *ruby.TypeInfo {
	var key string
	if a.store != nil {
		if k, err := a.keyer.Key("typeinfo", doc.URI, doc.Version, pos); err == nil {
			key = k
			if raw, ok := a.store.Get(ctx, key); ok {
				var info ruby.TypeInfo
				if err := json.Unmarshal(raw, &info); err == nil {
					return &info
				}
			}
		}
	}

	info, ok := call(ctx, a, "typeinfo", doc.URI, func(ctx context.Context, s CapabilitySurface) (*ruby.TypeInfo, error) {
		return s.TypeInfo(ctx, doc, pos)
	})
	if !ok || info == nil {
		return nil
	}

	if a.store != nil && key != "" {
		if raw, err := json.Marshal(info); err == nil {
			_ = a.store.Set(ctx, key, raw, a.policy.EffectiveTTL(0))
		}
	}
	return info
}

// EnhanceHover augments base hover content with type information. The
// base content passes through untouched (including nil) whenever the
// service is unavailable or the call fails: a broken integration must
// never make hover worse than it was without it.
func (a *Adapter) EnhanceHover(ctx context.Context, doc ruby.Document, pos ruby.Position, base *ruby.Hover) *ruby.Hover {
	enhanced, ok := call(ctx, a, "hover", doc.URI, func(ctx context.Context, s CapabilitySurface) (*ruby.Hover, error) {
		return s.EnhanceHover(ctx, doc, pos, base)
	})
	if !ok || enhanced == nil {
		return base
	}
	return enhanced
}

// ResetBreaker force-clears the breaker's failure count and cool-down,
// and drops memoized results. Wired to a user-facing retry command.
func (a *Adapter) ResetBreaker() {
	a.breaker.Reset()
	if f, ok := a.store.(interface{ Flush() }); ok {
		f.Flush()
	}
	a.logger.Info(context.Background(), "sorbet breaker reset")
}

// BreakerState returns the breaker's current counters for diagnostics.
func (a *Adapter) BreakerState() resilience.BreakerMetrics {
	return a.breaker.Snapshot()
}

// Poller exposes the status poller, e.g. for registering health
// endpoints.
func (a *Adapter) Poller() *health.Poller {
	return a.poller
}

// Dispose stops the poller and closes the surface if it is closeable.
// Idempotent: double disposal is a no-op.
func (a *Adapter) Dispose() {
	a.disposeOnce.Do(func() {
		a.poller.Stop()
		if c, ok := a.currentSurface().(io.Closer); ok {
			if err := c.Close(); err != nil {
				a.logger.Warn(context.Background(), "surface close failed",
					observe.Field{Key: "error", Value: err.Error()})
			}
		}
	})
}

// filterAccessible drops locations whose uris the caller cannot open.
func filterAccessible(locs []ruby.Location) []ruby.Location {
	if len(locs) == 0 {
		return nil
	}
	filtered := make([]ruby.Location, 0, len(locs))
	for _, loc := range locs {
		if ruby.AccessibleURI(loc.URI) {
			filtered = append(filtered, loc)
		}
	}
	return filtered
}
