package recommendation

import (
	"context"
	"fmt"
	"sort"

	"storefrontReco/domain"
)

const collaborativeReason = "Customers who bought what you bought also bought this"

// CollaborativeExtractor recommends products that appear in the paid orders
// of customers who bought the same products as the user.
type CollaborativeExtractor struct {
	orders     OrderHistoryRepository
	sampleSize int
}

func NewCollaborativeExtractor(orders OrderHistoryRepository, sampleSize int) *CollaborativeExtractor {
	if sampleSize <= 0 {
		sampleSize = defaultCollaborativeSampleSize
	}
	return &CollaborativeExtractor{orders: orders, sampleSize: sampleSize}
}

func (e *CollaborativeExtractor) Strategy() string { return domain.StrategyCollaborative }

func (e *CollaborativeExtractor) Generate(ctx context.Context, userID uint, limit int) ([]domain.CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	purchased, err := e.orders.PaidProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}
	if len(purchased) == 0 {
		return []domain.CandidateScore{}, nil
	}

	sample, err := e.orders.SampleCoPurchases(ctx, userID, purchased, e.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample co-purchases: %w", err)
	}
	if len(sample) == 0 {
		return []domain.CandidateScore{}, nil
	}

	baskets, err := e.orders.BasketItems(ctx, sampledOrderIDs(sample))
	if err != nil {
		return nil, fmt.Errorf("failed to load baskets: %w", err)
	}

	return scoreCoPurchases(purchased, sample, baskets, limit), nil
}

func sampledOrderIDs(sample []domain.OrderItem) []uint64 {
	seen := make(map[uint64]struct{}, len(sample))
	ids := make([]uint64, 0, len(sample))
	for _, it := range sample {
		if _, ok := seen[it.OrderID]; ok {
			continue
		}
		seen[it.OrderID] = struct{}{}
		ids = append(ids, it.OrderID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// scoreCoPurchases tallies basket products outside the purchased set. Only
// basket lines belonging to sampled orders count, and the result does not
// depend on the order of any input slice.
func scoreCoPurchases(purchased []uint64, sample, baskets []domain.OrderItem, limit int) []domain.CandidateScore {
	if len(sample) == 0 || limit <= 0 {
		return []domain.CandidateScore{}
	}

	owned := make(map[uint64]struct{}, len(purchased))
	for _, id := range purchased {
		owned[id] = struct{}{}
	}
	orders := make(map[uint64]struct{}, len(sample))
	for _, it := range sample {
		orders[it.OrderID] = struct{}{}
	}

	counts := make(map[uint64]int)
	for _, it := range baskets {
		if _, ok := orders[it.OrderID]; !ok {
			continue
		}
		if _, ok := owned[it.ProductID]; ok {
			continue
		}
		counts[it.ProductID]++
	}

	out := make([]domain.CandidateScore, 0, len(counts))
	total := float64(len(sample))
	for pid, n := range counts {
		out = append(out, domain.CandidateScore{
			ProductID: pid,
			Score:     clamp01(float64(n) / total),
			Reason:    collaborativeReason,
			Strategy:  domain.StrategyCollaborative,
		})
	}

	sortCandidates(out)
	return truncate(out, limit)
}
