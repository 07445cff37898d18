package recommendation

import (
	"testing"
	"time"

	"storefrontReco/pkg/config"
)

func TestConfigFromApp(t *testing.T) {
	cfg := ConfigFromApp(config.RecommendationConfig{
		DefaultLimit:            20,
		MaxLimit:                50,
		CollaborativeSampleSize: 25,
		TrendingWindowDays:      7,
	})

	if cfg.DefaultLimit != 20 || cfg.MaxLimit != 50 || cfg.CollaborativeSampleSize != 25 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TrendingWindow != 7*24*time.Hour {
		t.Fatalf("window = %v", cfg.TrendingWindow)
	}
	// unset values fall back to defaults
	if cfg.ContentEventWindow != 50 || cfg.TrendingSaturation != 10 || cfg.BatchConcurrency != 4 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestWithDefaultsCapsDefaultLimit(t *testing.T) {
	cfg := Config{DefaultLimit: 30, MaxLimit: 10}.withDefaults()
	if cfg.DefaultLimit != 10 {
		t.Fatalf("default limit = %d, want 10", cfg.DefaultLimit)
	}
}
