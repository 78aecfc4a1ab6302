package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.DefaultTTL != 2*time.Second {
		t.Errorf("DefaultTTL = %v, want 2s", p.DefaultTTL)
	}
	if p.MaxTTL != 30*time.Second {
		t.Errorf("MaxTTL = %v, want 30s", p.MaxTTL)
	}
	if !p.ShouldCache() {
		t.Error("ShouldCache() = false, want true")
	}
}

func TestNoCachePolicy(t *testing.T) {
	p := NoCachePolicy()

	if p.ShouldCache() {
		t.Error("ShouldCache() = true, want false")
	}
	if got := p.EffectiveTTL(0); got != 0 {
		t.Errorf("EffectiveTTL(0) = %v, want 0", got)
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"no override uses default", 0, 2 * time.Second},
		{"negative override uses default", -time.Second, 2 * time.Second},
		{"override within range", 5 * time.Second, 5 * time.Second},
		{"override clamped to max", time.Hour, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}
