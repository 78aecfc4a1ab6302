package ruby

import (
	"strings"
	"testing"
)

func TestTypeLevelOf(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TypeLevel
	}{
		{"strict at line 0", "# typed: strict\nclass Foo; end\n", TypeLevelStrict},
		{"true at line 0", "# typed: true\n", TypeLevelTrue},
		{"false level", "# typed: false\n", TypeLevelFalse},
		{"ignore level", "# typed: ignore\n", TypeLevelIgnore},
		{"strong level", "# typed: strong\n", TypeLevelStrong},
		{"irregular spacing", "#  typed:   strict\n", TypeLevelStrict},
		{"no space after hash", "#typed:strict\n", TypeLevelStrict},
		{"leading whitespace", "  # typed: true\n", TypeLevelTrue},
		{"after frozen string literal", "# frozen_string_literal: true\n# typed: strict\n", TypeLevelStrict},
		{"empty text", "", TypeLevelNone},
		{"no sigil", "class Foo\n  def bar; end\nend\n", TypeLevelNone},
		{"invalid level token", "# typed: maybe\n", TypeLevelNone},
		{"sigil not a comment", "typed: strict\n", TypeLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeLevelOf(tt.text); got != tt.want {
				t.Errorf("TypeLevelOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeLevelOf_Window(t *testing.T) {
	// Sigil at line 49 (zero-indexed) is the last line inside the window.
	inWindow := strings.Repeat("# filler\n", 49) + "# typed: strong\n"
	if got := TypeLevelOf(inWindow); got != TypeLevelStrong {
		t.Errorf("sigil at line 49: TypeLevelOf() = %v, want strong", got)
	}

	// Sigil at line 51 is outside the 50-line window.
	outOfWindow := strings.Repeat("# filler\n", 51) + "# typed: strict\n"
	if got := TypeLevelOf(outOfWindow); got != TypeLevelNone {
		t.Errorf("sigil at line 51: TypeLevelOf() = %v, want none", got)
	}

	// Exactly at line 50 (first line past the window) must not count.
	boundary := strings.Repeat("# filler\n", 50) + "# typed: strict\n"
	if got := TypeLevelOf(boundary); got != TypeLevelNone {
		t.Errorf("sigil at line 50: TypeLevelOf() = %v, want none", got)
	}
}

func TestTypeLevel_String(t *testing.T) {
	tests := []struct {
		level TypeLevel
		want  string
	}{
		{TypeLevelNone, "none"},
		{TypeLevelIgnore, "ignore"},
		{TypeLevelFalse, "false"},
		{TypeLevelTrue, "true"},
		{TypeLevelStrict, "strict"},
		{TypeLevelStrong, "strong"},
		{TypeLevel(99), "none"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("TypeLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}
