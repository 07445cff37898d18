package recommendation

import (
	"context"
	"fmt"

	"storefrontReco/domain"
)

// EligibilityChecker decides if a product may be recommended to a user
// (stock, visibility).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, userID uint, productID uint64) (bool, error)
}

// NoopEligibility allows every product.
type NoopEligibility struct{}

func (NoopEligibility) IsEligible(ctx context.Context, userID uint, productID uint64) (bool, error) {
	return true, nil
}

// InStockEligibility rejects products that are missing from the catalog or
// have no remaining quantity.
type InStockEligibility struct {
	catalog CatalogRepository
}

func NewInStockEligibility(catalog CatalogRepository) *InStockEligibility {
	return &InStockEligibility{catalog: catalog}
}

func (e *InStockEligibility) IsEligible(ctx context.Context, userID uint, productID uint64) (bool, error) {
	products, err := e.catalog.FindByIDs(ctx, []uint64{productID})
	if err != nil {
		return false, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	for _, p := range products {
		if p.ID == productID {
			return p.Quantity > 0, nil
		}
	}
	return false, nil
}

func filterEligible(ctx context.Context, checker EligibilityChecker, userID uint, candidates []domain.CandidateScore) []domain.CandidateScore {
	if checker == nil {
		return candidates
	}
	if _, ok := checker.(NoopEligibility); ok {
		return candidates
	}

	out := candidates[:0]
	for _, c := range candidates {
		ok, err := checker.IsEligible(ctx, userID, c.ProductID)
		if err != nil {
			logWarn(ctx, "eligibility check failed", userID, c.Strategy, "product_id", c.ProductID, "error", err)
			continue
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}
