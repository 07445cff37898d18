package postgres

import (
	"context"
	"fmt"

	"storefrontReco/domain"

	"gorm.io/gorm"
)

// OrderHistoryRepository reads paid orders and their line items.
type OrderHistoryRepository struct {
	DB *gorm.DB
}

func NewOrderHistoryRepository(db *gorm.DB) *OrderHistoryRepository {
	return &OrderHistoryRepository{DB: db}
}

func (r *OrderHistoryRepository) PaidProductIDs(ctx context.Context, userID uint) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.user_id = ? AND o.order_status = ?", userID, domain.OrderStatusPaid).
		Distinct().
		Order("oi.product_id").
		Pluck("oi.product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purchased products: %w", err)
	}

	return ids, nil
}

func (r *OrderHistoryRepository) SampleCoPurchases(ctx context.Context, userID uint, productIDs []uint64, limit int) ([]domain.OrderItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(productIDs) == 0 || limit <= 0 {
		return []domain.OrderItem{}, nil
	}

	var items []domain.OrderItem
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.*").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.order_status = ? AND o.user_id <> ?", domain.OrderStatusPaid, userID).
		Where("oi.product_id IN ?", productIDs).
		Order("oi.id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sample co-purchases: %w", err)
	}

	return items, nil
}

func (r *OrderHistoryRepository) BasketItems(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(orderIDs) == 0 {
		return []domain.OrderItem{}, nil
	}

	var items []domain.OrderItem
	err := r.DB.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find basket items: %w", err)
	}

	return items, nil
}
