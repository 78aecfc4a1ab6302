// Package resilience provides the failure-handling primitives that let a
// host application depend on an occasionally-unavailable external service
// without blocking or crashing.
//
// # Components
//
//   - Breaker: a counter-threshold circuit gate. Repeated failures arm a
//     fixed cool-down window during which the service is reported
//     unavailable; after the window elapses the breaker defers to an
//     externally observed availability signal rather than probing.
//
//   - Guard: bounds the latency of a call and feeds the outcome into a
//     Breaker. Timeouts are swallowed into an absence-of-data result;
//     genuine errors from the call are propagated verbatim.
//
//   - Classify: maps an error to a stable FailureKind taxonomy tag
//     (watchman, config, crash, unknown) for logging and metrics.
//
//   - Retry: backoff retry, used when binding to a service that may not
//     have finished loading.
//
// # Usage
//
//	breaker := resilience.NewBreaker(resilience.BreakerConfig{
//	    TripThreshold: 3,
//	    CoolDown:      5 * time.Minute,
//	    Availability:  poller.Available,
//	})
//
//	guard := resilience.NewGuard(breaker, resilience.GuardConfig{
//	    Timeout: 5 * time.Second,
//	})
//
//	locs, ok, err := resilience.Call(ctx, guard, "definition", fetchLocations)
//	if err != nil {
//	    breaker.RecordFailure(resilience.Classify(err), "definition")
//	}
package resilience
