package engine

import "github.com/readlark/htmlhl/internal/resolver"

// Config is the engine's tunable surface: marker tag, cache capacity, and
// the resolver cascade's per-strategy thresholds. Thresholds stay
// separately named fields rather than a single merged score, since each
// strategy's acceptance bar is independently tunable.
type Config struct {
	MarkerTag           string
	CacheCapacity       int
	Thresholds          resolver.Thresholds
	PaletteOverridePath string // empty disables the override
}

// DefaultConfig returns the engine's default tuning: marker tag html-hl,
// cache capacity 20, thresholds 0.9/0.7/0.5, no palette override.
func DefaultConfig() Config {
	return Config{
		MarkerTag:     "html-hl",
		CacheCapacity: 20,
		Thresholds:    resolver.DefaultThresholds(),
	}
}
