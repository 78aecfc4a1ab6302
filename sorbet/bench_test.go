package sorbet

import (
	"context"
	"testing"

	"github.com/jonwraymond/sorbetbridge/ruby"
)

func newBenchAdapter(b *testing.B, s CapabilitySurface) *Adapter {
	b.Helper()
	a, err := NewAdapter(WithBinder(bindTo(s)))
	if err != nil {
		b.Fatalf("NewAdapter() error = %v", err)
	}
	a.Initialize(context.Background())
	b.Cleanup(a.Dispose)
	return a
}

func BenchmarkAdapter_Definition(b *testing.B) {
	fake := newFakeSurface()
	fake.locs = []ruby.Location{{URI: "file:///app/models/user.rb"}}
	a := newBenchAdapter(b, fake)

	ctx := context.Background()
	pos := ruby.Position{Line: 1, Character: 6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Definition(ctx, testDoc, pos)
	}
}

func BenchmarkAdapter_TypeInfoCached(b *testing.B) {
	fake := newFakeSurface()
	fake.info = &ruby.TypeInfo{Type: "String"}
	a := newBenchAdapter(b, fake)

	ctx := context.Background()
	pos := ruby.Position{Line: 3, Character: 2}
	_ = a.TypeInfo(ctx, testDoc, pos) // warm the cache

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.TypeInfo(ctx, testDoc, pos)
	}
}

func BenchmarkAdapter_Unavailable(b *testing.B) {
	a, err := NewAdapter()
	if err != nil {
		b.Fatalf("NewAdapter() error = %v", err)
	}
	b.Cleanup(a.Dispose)

	ctx := context.Background()
	pos := ruby.Position{Line: 1, Character: 6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Definition(ctx, testDoc, pos)
	}
}
