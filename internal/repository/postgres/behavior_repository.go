package postgres

import (
	"context"
	"fmt"
	"time"

	"storefrontReco/domain"

	"gorm.io/gorm"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{DB: db}
}

func (r *BehaviorRepository) Create(ctx context.Context, event *domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	return nil
}

// RecentProductBehaviors takes the user's newest product events first and
// then joins catalog data, so the window counts events rather than rows
// surviving the join.
func (r *BehaviorRepository) RecentProductBehaviors(ctx context.Context, userID uint, limit int) ([]domain.ProductBehavior, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.ProductBehavior{}, nil
	}

	window := r.DB.Table("behavior_events").
		Select("id, product_id, action_type, created_at").
		Where("user_id = ? AND product_id IS NOT NULL", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	var rows []domain.ProductBehavior
	err := r.DB.WithContext(ctx).
		Table("(?) AS be", window).
		Select("be.id AS event_id, be.product_id, be.action_type, p.category_id, " +
			categoryNameExpr + " AS category_name, " +
			productPriceExpr + " AS price, be.created_at").
		Joins("JOIN products p ON p.id = be.product_id").
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Order("be.created_at DESC, be.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent behavior: %w", err)
	}

	return rows, nil
}

func (r *BehaviorRepository) TrendingProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductEventCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.ProductEventCount{}, nil
	}

	var rows []domain.ProductEventCount
	err := r.DB.WithContext(ctx).
		Table("behavior_events AS be").
		Select("be.product_id, MAX(" + categoryNameExpr + ") AS category_name, COUNT(*) AS event_count").
		Joins("JOIN products p ON p.id = be.product_id").
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Where("be.product_id IS NOT NULL AND be.created_at >= ?", since).
		Group("be.product_id").
		Order("event_count DESC, be.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count trending products: %w", err)
	}

	return rows, nil
}
