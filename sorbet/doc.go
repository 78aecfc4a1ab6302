// Package sorbet is a resilient adapter for an optional Sorbet
// type-checking service.
//
// The service may be absent, still indexing, or crashing; none of that
// may degrade the editing experience beyond losing the extra type
// information. The adapter therefore wraps every query with a circuit
// breaker, a timeout guard, and a status poller, and its query methods
// never return errors: on any failure they return the query's empty
// result (no locations, no type info, the caller's own hover content).
package sorbet
