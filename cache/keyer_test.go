package cache

import (
	"strings"
	"testing"

	"github.com/jonwraymond/sorbetbridge/ruby"
)

func TestDocKeyer_Deterministic(t *testing.T) {
	k := NewDocKeyer()
	pos := ruby.Position{Line: 10, Character: 4}

	key1, err := k.Key("hover", "file:///lib/foo.rb", 3, pos)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := k.Key("hover", "file:///lib/foo.rb", 3, pos)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if key1 != key2 {
		t.Errorf("keys differ: %q vs %q", key1, key2)
	}
	if !strings.HasPrefix(key1, "sorbet:hover:") {
		t.Errorf("key = %q, want sorbet:hover: prefix", key1)
	}
	if err := ValidateKey(key1); err != nil {
		t.Errorf("generated key fails validation: %v", err)
	}
}

func TestDocKeyer_VersionChangesKey(t *testing.T) {
	k := NewDocKeyer()
	pos := ruby.Position{Line: 10, Character: 4}

	key1, _ := k.Key("hover", "file:///lib/foo.rb", 3, pos)
	key2, _ := k.Key("hover", "file:///lib/foo.rb", 4, pos)

	if key1 == key2 {
		t.Error("keys for different document versions should differ")
	}
}

func TestDocKeyer_PositionChangesKey(t *testing.T) {
	k := NewDocKeyer()

	key1, _ := k.Key("typeinfo", "file:///lib/foo.rb", 1, ruby.Position{Line: 1, Character: 0})
	key2, _ := k.Key("typeinfo", "file:///lib/foo.rb", 1, ruby.Position{Line: 1, Character: 1})

	if key1 == key2 {
		t.Error("keys for different positions should differ")
	}
}

func TestDocKeyer_OperationChangesKey(t *testing.T) {
	k := NewDocKeyer()
	pos := ruby.Position{Line: 5, Character: 2}

	key1, _ := k.Key("hover", "file:///lib/foo.rb", 1, pos)
	key2, _ := k.Key("typeinfo", "file:///lib/foo.rb", 1, pos)

	if key1 == key2 {
		t.Error("keys for different operations should differ")
	}
}

func TestDocKeyer_EmptyOperation(t *testing.T) {
	k := NewDocKeyer()

	if _, err := k.Key("", "file:///lib/foo.rb", 1, ruby.Position{}); err == nil {
		t.Error("expected error for empty operation")
	}
}
