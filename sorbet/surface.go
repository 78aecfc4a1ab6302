package sorbet

import (
	"context"

	"github.com/jonwraymond/sorbetbridge/ruby"
)

// CapabilitySurface is a handle onto a live Sorbet service. It is the
// only thing the adapter ever talks to; how the surface reaches the
// service (extension host, LSP sidecar, test fake) is the binder's
// business.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: every method must honor cancellation/deadlines.
// - Errors: methods return the service's errors verbatim; the adapter
//   classifies them.
// - Ownership: a surface may implement io.Closer; the adapter closes it
//   on Dispose.
type CapabilitySurface interface {
	// Status reports the service's self-described state, e.g. "running"
	// or "indexing".
	Status(ctx context.Context) (string, error)

	// DefinitionLocations resolves the definition sites for the symbol at
	// the given position.
	DefinitionLocations(ctx context.Context, doc ruby.Document, pos ruby.Position) ([]ruby.Location, error)

	// ReferenceLocations resolves the reference sites for the symbol at
	// the given position.
	ReferenceLocations(ctx context.Context, doc ruby.Document, pos ruby.Position) ([]ruby.Location, error)

	// TypeInfo reports the static type at the given position. A nil
	// result with nil error means the service has nothing to say there.
	TypeInfo(ctx context.Context, doc ruby.Document, pos ruby.Position) (*ruby.TypeInfo, error)

	// EnhanceHover augments base hover content with type information.
	// base may be nil; implementations may return base unchanged.
	EnhanceHover(ctx context.Context, doc ruby.Document, pos ruby.Position, base *ruby.Hover) (*ruby.Hover, error)
}

// Binder locates a capability surface. It is called during Initialize,
// under retry: the service may not be loaded yet when the adapter starts.
type Binder func(ctx context.Context) (CapabilitySurface, error)

// NopSurface is a CapabilitySurface that reports a running service with
// no results. Useful in tests and as a stand-in when the integration is
// disabled by configuration.
type NopSurface struct{}

func (NopSurface) Status(ctx context.Context) (string, error) {
	return "running", nil
}

func (NopSurface) DefinitionLocations(ctx context.Context, doc ruby.Document, pos ruby.Position) ([]ruby.Location, error) {
	return nil, nil
}

func (NopSurface) ReferenceLocations(ctx context.Context, doc ruby.Document, pos ruby.Position) ([]ruby.Location, error) {
	return nil, nil
}

func (NopSurface) TypeInfo(ctx context.Context, doc ruby.Document, pos ruby.Position) (*ruby.TypeInfo, error) {
	return nil, nil
}

func (NopSurface) EnhanceHover(ctx context.Context, doc ruby.Document, pos ruby.Position, base *ruby.Hover) (*ruby.Hover, error) {
	return base, nil
}

// Ensure NopSurface implements CapabilitySurface
var _ CapabilitySurface = NopSurface{}
