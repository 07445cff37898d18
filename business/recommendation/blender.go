package recommendation

import (
	"context"
	"fmt"
	"math"

	"storefrontReco/domain"
	"storefrontReco/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	collaborativeShare = 0.4
	contentShare       = 0.4
	trendingShare      = 0.2
)

// strategyRank breaks score ties between strategies during merge.
var strategyRank = map[string]int{
	domain.StrategyCollaborative: 0,
	domain.StrategyContentBased:  1,
	domain.StrategyTrending:      2,
}

// Blender runs the three extractors concurrently and merges their output
// into one ranked list.
type Blender struct {
	collaborative Extractor
	content       Extractor
	trending      Extractor
	eligibility   EligibilityChecker
}

func NewBlender(collaborative, content, trending Extractor, eligibility EligibilityChecker) *Blender {
	if eligibility == nil {
		eligibility = NoopEligibility{}
	}
	return &Blender{
		collaborative: collaborative,
		content:       content,
		trending:      trending,
		eligibility:   eligibility,
	}
}

type blendSource struct {
	extractor Extractor
	limit     int
}

func (b *Blender) Blend(ctx context.Context, userID uint, limit int) ([]domain.CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	sources := []blendSource{
		{b.collaborative, subLimit(limit, collaborativeShare)},
		{b.content, subLimit(limit, contentShare)},
		{b.trending, subLimit(limit, trendingShare)},
	}

	results := make([][]domain.CandidateScore, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		if src.extractor == nil {
			continue
		}
		g.Go(func() error {
			strategy := src.extractor.Strategy()
			out, err := src.extractor.Generate(ctx, userID, src.limit)
			if err != nil {
				// a failing extractor contributes nothing; the others still count
				ExtractorFailuresTotal.WithLabelValues(strategy).Inc()
				logWarn(ctx, "extractor failed", userID, strategy, "error", err)
				return nil
			}
			CandidatesTotal.WithLabelValues(strategy).Add(float64(len(out)))
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	merged := mergeCandidates(results...)
	merged = filterEligible(ctx, b.eligibility, userID, merged)
	sortCandidates(merged)

	logger.Debug("recommendation_blend",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"merged", len(merged),
	)

	return truncate(merged, limit), nil
}

func subLimit(limit int, share float64) int {
	return int(math.Ceil(float64(limit) * share))
}

// mergeCandidates keeps, per product, the highest scoring entry together with
// its reason and strategy. Equal scores go to the lower strategyRank so the
// outcome does not depend on which list arrives first.
func mergeCandidates(lists ...[]domain.CandidateScore) []domain.CandidateScore {
	best := make(map[uint64]domain.CandidateScore)
	for _, list := range lists {
		for _, c := range list {
			c.Score = clamp01(c.Score)
			cur, ok := best[c.ProductID]
			if !ok || c.Score > cur.Score || (c.Score == cur.Score && rankOf(c.Strategy) < rankOf(cur.Strategy)) {
				best[c.ProductID] = c
			}
		}
	}

	out := make([]domain.CandidateScore, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sortCandidates(out)
	return out
}

func rankOf(strategy string) int {
	if r, ok := strategyRank[strategy]; ok {
		return r
	}
	return len(strategyRank)
}

func logWarn(ctx context.Context, msg string, userID uint, strategy string, kv ...interface{}) {
	fields := append([]interface{}{
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"strategy", strategy,
	}, kv...)
	logger.Warn(msg, fields...)
}
