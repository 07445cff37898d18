package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefrontReco/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sortColumns = map[string]string{
	domain.SortByScore:     "r.score",
	domain.SortByCreatedAt: "r.created_at",
}

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// Upsert inserts reco or, on a (user_id, product_id, strategy) conflict,
// refreshes score, reason and timestamps. Interaction flags keep their
// stored values.
func (r *RecommendationRepository) Upsert(ctx context.Context, reco *domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "product_id"},
				{Name: "strategy"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"score", "reason", "created_at", "updated_at"}),
		},
	).Create(reco).Error
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) FindByKey(ctx context.Context, userID uint, productID uint64, strategy string) (*domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reco domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND strategy = ?", userID, productID, strategy).
		First(&reco).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendation: %w", err)
	}

	return &reco, nil
}

func (r *RecommendationRepository) Query(ctx context.Context, f domain.RecommendationFilter) ([]domain.RecommendationView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort column %q", f.SortBy)
	}

	tx := r.DB.WithContext(ctx).
		Table("recommendations AS r").
		Select("r.id, r.user_id, r.product_id, r.strategy, r.score, r.reason, " +
			"r.is_viewed, r.is_clicked, r.is_purchased, r.created_at, " +
			"p.product_name, p.category_id, " + categoryNameExpr + " AS category_name, " +
			productPriceExpr + " AS price, p.sale_price, p.quantity, " +
			"COALESCE(rv.avg_rating, 0) AS avg_rating, COALESCE(rv.review_count, 0) AS review_count").
		Joins("JOIN products p ON p.id = r.product_id").
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Joins("LEFT JOIN (?) AS rv ON rv.product_id = r.product_id", approvedReviews(r.DB))

	if f.UserID != nil {
		tx = tx.Where("r.user_id = ?", *f.UserID)
	}
	if len(f.Strategies) > 0 {
		tx = tx.Where("r.strategy IN ?", f.Strategies)
	}

	var views []domain.RecommendationView
	err := tx.
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: column, Raw: true},
			Desc:   f.SortOrder == domain.SortDesc,
		}).
		Order("r.id ASC").
		Limit(f.Limit).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}

	return views, nil
}

func (r *RecommendationRepository) UpdateInteraction(ctx context.Context, userID uint, productID uint64, upd domain.InteractionUpdate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if upd.IsViewed != nil {
		updates["is_viewed"] = *upd.IsViewed
	}
	if upd.IsClicked != nil {
		updates["is_clicked"] = *upd.IsClicked
	}
	if upd.IsPurchased != nil {
		updates["is_purchased"] = *upd.IsPurchased
	}
	if upd.Score != nil {
		updates["score"] = *upd.Score
	}
	if upd.Reason != nil {
		updates["reason"] = *upd.Reason
	}

	res := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update recommendation interaction: %w", res.Error)
	}

	return res.RowsAffected, nil
}

func (r *RecommendationRepository) AggregateByStrategy(ctx context.Context, userID *uint) ([]domain.StrategyAggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tx := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Select("strategy, COUNT(*) AS total, " +
			"SUM(CASE WHEN is_clicked THEN 1 ELSE 0 END) AS clicked, " +
			"SUM(CASE WHEN is_purchased THEN 1 ELSE 0 END) AS purchased, " +
			"COALESCE(AVG(score), 0) AS avg_score").
		Group("strategy").
		Order("strategy")

	if userID != nil {
		tx = tx.Where("user_id = ?", *userID)
	}

	var rows []domain.StrategyAggregate
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate recommendations: %w", err)
	}

	return rows, nil
}
