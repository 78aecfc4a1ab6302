// Package observe provides observability primitives for calls to the
// Sorbet capability surface.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers wire the Instrumenter into the sorbet
// adapter, which brackets each guarded call with Begin/done.
package observe
