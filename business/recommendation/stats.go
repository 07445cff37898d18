package recommendation

import (
	"context"
	"fmt"

	"storefrontReco/domain"
)

// Stats summarizes stored recommendations, for one user or for everyone when
// userID is nil.
func (s *Service) Stats(ctx context.Context, userID *uint) (*domain.RecommendationStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if userID != nil && *userID == 0 {
		return nil, ErrInvalidUserID
	}

	rows, err := s.recoRepo.AggregateByStrategy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recommendations: %w", err)
	}

	stats := buildStats(rows)
	return &stats, nil
}

func buildStats(rows []domain.StrategyAggregate) domain.RecommendationStats {
	stats := domain.RecommendationStats{
		ByStrategy: make(map[string]domain.StrategyStats, len(rows)),
	}

	for _, r := range rows {
		stats.Total += r.Count
		stats.Clicked += r.Clicked
		stats.Purchased += r.Purchased

		cur := stats.ByStrategy[r.Strategy]
		if n := cur.Count + r.Count; n > 0 {
			cur.AvgScore = (cur.AvgScore*float64(cur.Count) + r.AvgScore*float64(r.Count)) / float64(n)
		}
		cur.Count += r.Count
		stats.ByStrategy[r.Strategy] = cur
	}

	if stats.Total > 0 {
		stats.ClickThrough = float64(stats.Clicked) / float64(stats.Total)
		stats.ConversionRate = float64(stats.Purchased) / float64(stats.Total)
	}

	return stats
}
