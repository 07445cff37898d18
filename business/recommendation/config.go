package recommendation

import (
	"time"

	"storefrontReco/pkg/config"
)

type Config struct {
	DefaultLimit int
	MaxLimit     int

	// upper bound on co-purchase line items sampled per user
	CollaborativeSampleSize int

	// most recent product events folded into the preference profile
	ContentEventWindow int

	TrendingWindow     time.Duration
	TrendingSaturation int
	TrendingCacheTTL   time.Duration

	BatchConcurrency int
}

const (
	defaultLimit                   = 10
	defaultMaxLimit                = 100
	defaultCollaborativeSampleSize = 100
	defaultContentEventWindow      = 50
	defaultTrendingWindow          = 30 * 24 * time.Hour
	defaultTrendingSaturation      = 10
	defaultTrendingCacheTTL        = 5 * time.Minute
	defaultBatchConcurrency        = 4
)

func DefaultConfig() Config {
	return Config{
		DefaultLimit:            defaultLimit,
		MaxLimit:                defaultMaxLimit,
		CollaborativeSampleSize: defaultCollaborativeSampleSize,
		ContentEventWindow:      defaultContentEventWindow,
		TrendingWindow:          defaultTrendingWindow,
		TrendingSaturation:      defaultTrendingSaturation,
		TrendingCacheTTL:        defaultTrendingCacheTTL,
		BatchConcurrency:        defaultBatchConcurrency,
	}
}

// ConfigFromApp maps the env-driven application config onto engine tunables.
func ConfigFromApp(rc config.RecommendationConfig) Config {
	return Config{
		DefaultLimit:            rc.DefaultLimit,
		MaxLimit:                rc.MaxLimit,
		CollaborativeSampleSize: rc.CollaborativeSampleSize,
		ContentEventWindow:      rc.ContentEventWindow,
		TrendingWindow:          time.Duration(rc.TrendingWindowDays) * 24 * time.Hour,
		TrendingSaturation:      rc.TrendingSaturation,
		TrendingCacheTTL:        rc.TrendingCacheTTL,
		BatchConcurrency:        rc.BatchConcurrency,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = d.MaxLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	if c.CollaborativeSampleSize <= 0 {
		c.CollaborativeSampleSize = d.CollaborativeSampleSize
	}
	if c.ContentEventWindow <= 0 {
		c.ContentEventWindow = d.ContentEventWindow
	}
	if c.TrendingWindow <= 0 {
		c.TrendingWindow = d.TrendingWindow
	}
	if c.TrendingSaturation <= 0 {
		c.TrendingSaturation = d.TrendingSaturation
	}
	if c.TrendingCacheTTL <= 0 {
		c.TrendingCacheTTL = d.TrendingCacheTTL
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = d.BatchConcurrency
	}
	return c
}
