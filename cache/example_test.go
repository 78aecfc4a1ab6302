package cache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/sorbetbridge/cache"
	"github.com/jonwraymond/sorbetbridge/ruby"
)

func ExampleMemoryCache() {
	c := cache.NewMemoryCache(cache.DefaultPolicy())
	keyer := cache.NewDocKeyer()
	ctx := context.Background()

	key, _ := keyer.Key("hover", "file:///lib/foo.rb", 3, ruby.Position{Line: 10, Character: 4})

	_ = c.Set(ctx, key, []byte(`{"type":"String"}`), 2*time.Second)

	if value, ok := c.Get(ctx, key); ok {
		fmt.Println(string(value))
	}
	// Output: {"type":"String"}
}

func ExamplePolicy_EffectiveTTL() {
	p := cache.DefaultPolicy()

	fmt.Println(p.EffectiveTTL(0))
	fmt.Println(p.EffectiveTTL(time.Hour))
	// Output:
	// 2s
	// 30s
}
