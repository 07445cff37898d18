package recommendation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"storefrontReco/domain"
	"storefrontReco/pkg/logger"
)

// TrendingExtractor ranks products by recent interaction volume across all
// users. The user id is ignored.
type TrendingExtractor struct {
	behaviors  BehaviorRepository
	cache      TrendingCache
	window     time.Duration
	saturation int
	cacheTTL   time.Duration
	now        func() time.Time
}

func NewTrendingExtractor(behaviors BehaviorRepository, cache TrendingCache, cfg Config) *TrendingExtractor {
	cfg = cfg.withDefaults()
	return &TrendingExtractor{
		behaviors:  behaviors,
		cache:      cache,
		window:     cfg.TrendingWindow,
		saturation: cfg.TrendingSaturation,
		cacheTTL:   cfg.TrendingCacheTTL,
		now:        time.Now,
	}
}

func (e *TrendingExtractor) Strategy() string { return domain.StrategyTrending }

func (e *TrendingExtractor) Generate(ctx context.Context, _ uint, limit int) ([]domain.CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	if e.cache != nil {
		cached, ok, err := e.cache.Get(ctx, limit)
		if err != nil {
			logger.Warn("trending cache read failed", "trace_id", TraceIDFromContext(ctx), "error", err)
		} else if ok {
			return cached, nil
		}
	}

	counts, err := e.behaviors.TrendingProducts(ctx, e.now().Add(-e.window), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent interactions: %w", err)
	}

	scores := scoreTrending(counts, e.saturation, limit)

	if e.cache != nil {
		if err := e.cache.Set(ctx, limit, scores, e.cacheTTL); err != nil {
			logger.Warn("trending cache write failed", "trace_id", TraceIDFromContext(ctx), "error", err)
		}
	}

	return scores, nil
}

func scoreTrending(counts []domain.ProductEventCount, saturation, limit int) []domain.CandidateScore {
	if saturation <= 0 {
		saturation = defaultTrendingSaturation
	}

	rows := make([]domain.ProductEventCount, 0, len(counts))
	for _, c := range counts {
		if c.EventCount > 0 {
			rows = append(rows, c)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EventCount != rows[j].EventCount {
			return rows[i].EventCount > rows[j].EventCount
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]domain.CandidateScore, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CandidateScore{
			ProductID: r.ProductID,
			Score:     math.Min(float64(r.EventCount)/float64(saturation), 1),
			Reason:    fmt.Sprintf("Trending in %s with %d recent interactions", r.CategoryName, r.EventCount),
			Strategy:  domain.StrategyTrending,
		})
	}
	return out
}
