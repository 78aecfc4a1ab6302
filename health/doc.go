// Package health tracks whether the external service is actually
// reachable and what status it reports.
//
// The Poller runs a background probe on a fixed interval and caches two
// pieces of state: an availability flag ("the capability surface is
// reachable") and the service's free-form status string. Call sites
// consult the cache instead of probing the service on every query.
// Concurrent refreshes collapse into a single in-flight probe.
//
//	poller := health.NewPoller(surface.Status, health.PollerConfig{
//	    Interval: 10 * time.Second,
//	})
//	poller.Start()
//	defer poller.Stop()
//
//	if poller.Running() {
//	    // status == "running" and the surface is reachable
//	}
//
// HTTP handlers expose the cached state for host-process debugging.
package health
