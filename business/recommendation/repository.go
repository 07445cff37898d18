package recommendation

import (
	"context"
	"time"

	"storefrontReco/domain"
)

// ---- Repository interfaces ----

type OrderHistoryRepository interface {
	// PaidProductIDs returns the distinct products in the user's paid orders.
	PaidProductIDs(ctx context.Context, userID uint) ([]uint64, error)
	// SampleCoPurchases returns paid line items of other users whose product
	// is in productIDs, ordered by line item id, at most limit rows.
	SampleCoPurchases(ctx context.Context, userID uint, productIDs []uint64, limit int) ([]domain.OrderItem, error)
	BasketItems(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error)
}

type BehaviorRepository interface {
	Create(ctx context.Context, event *domain.BehaviorEvent) error
	// RecentProductBehaviors returns the user's newest product events joined
	// with category and price, newest first.
	RecentProductBehaviors(ctx context.Context, userID uint, limit int) ([]domain.ProductBehavior, error)
	// TrendingProducts counts product events since the cutoff, ordered by
	// count desc then product id asc.
	TrendingProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductEventCount, error)
}

type CatalogRepository interface {
	FindContentCandidates(ctx context.Context, q domain.ContentCandidateQuery) ([]domain.ProductCandidate, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type RecommendationRepository interface {
	// Upsert inserts or refreshes score and reason on the
	// (user, product, strategy) key. Interaction flags are left alone.
	Upsert(ctx context.Context, reco *domain.Recommendation) error
	FindByKey(ctx context.Context, userID uint, productID uint64, strategy string) (*domain.Recommendation, error)
	Query(ctx context.Context, filter domain.RecommendationFilter) ([]domain.RecommendationView, error)
	UpdateInteraction(ctx context.Context, userID uint, productID uint64, upd domain.InteractionUpdate) (int64, error)
	AggregateByStrategy(ctx context.Context, userID *uint) ([]domain.StrategyAggregate, error)
}

type UserRepository interface {
	FindCustomerIDs(ctx context.Context) ([]uint, error)
}

// TrendingCache stores computed trending lists keyed by limit.
type TrendingCache interface {
	Get(ctx context.Context, limit int) ([]domain.CandidateScore, bool, error)
	Set(ctx context.Context, limit int, scores []domain.CandidateScore, ttl time.Duration) error
}
