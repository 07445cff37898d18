package recommendation

import (
	"context"
	"math"
	"sort"

	"storefrontReco/domain"
)

// Extractor produces scored candidates for one strategy.
type Extractor interface {
	Strategy() string
	Generate(ctx context.Context, userID uint, limit int) ([]domain.CandidateScore, error)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sortCandidates orders by score desc, then product id asc.
func sortCandidates(c []domain.CandidateScore) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].ProductID < c[j].ProductID
	})
}

func truncate(c []domain.CandidateScore, limit int) []domain.CandidateScore {
	if limit >= 0 && len(c) > limit {
		return c[:limit]
	}
	return c
}
