// Package bootstrap wires the recommendation service over Postgres and the
// optional Redis cache for the HTTP server and the batch worker.
package bootstrap

import (
	"storefrontReco/business/recommendation"
	psqlRepo "storefrontReco/internal/repository/postgres"
	redisRepo "storefrontReco/internal/repository/redis"
	"storefrontReco/pkg/config"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	Orders          *psqlRepo.OrderHistoryRepository
	Behaviors       *psqlRepo.BehaviorRepository
	Catalog         *psqlRepo.CatalogRepository
	Recommendations *psqlRepo.RecommendationRepository
	Users           *psqlRepo.UserRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Orders:          psqlRepo.NewOrderHistoryRepository(db),
		Behaviors:       psqlRepo.NewBehaviorRepository(db),
		Catalog:         psqlRepo.NewCatalogRepository(db),
		Recommendations: psqlRepo.NewRecommendationRepository(db),
		Users:           psqlRepo.NewUserRepository(db),
	}
}

// TrendingCache returns nil when redis is disabled, so the interface value
// stays nil instead of wrapping a nil client.
func TrendingCache(client *redis.Client) recommendation.TrendingCache {
	if client == nil {
		return nil
	}
	return redisRepo.NewTrendingCache(client)
}

// Eligibility picks the candidate filter from RECO_ELIGIBILITY. Anything but
// in_stock allows every product.
func Eligibility(mode string, catalog recommendation.CatalogRepository) recommendation.EligibilityChecker {
	if mode == config.EligibilityInStock {
		return recommendation.NewInStockEligibility(catalog)
	}
	return recommendation.NoopEligibility{}
}

func NewRecommendationService(cfg *config.Config, db *gorm.DB, client *redis.Client) *recommendation.Service {
	repos := NewRepositories(db)

	return recommendation.NewService(
		recommendation.ConfigFromApp(cfg.Recommendation),
		repos.Orders,
		repos.Behaviors,
		repos.Catalog,
		repos.Recommendations,
		repos.Users,
		TrendingCache(client),
		Eligibility(cfg.Recommendation.Eligibility, repos.Catalog),
	)
}
