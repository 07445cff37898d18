package postgres

import (
	"context"
	"fmt"

	"storefrontReco/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// FindContentCandidates returns products in the given categories whose
// effective price lies in [MinPrice, MaxPrice], best rated first.
func (r *CatalogRepository) FindContentCandidates(ctx context.Context, q domain.ContentCandidateQuery) ([]domain.ProductCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(q.CategoryIDs) == 0 || q.Limit <= 0 {
		return []domain.ProductCandidate{}, nil
	}

	tx := r.DB.WithContext(ctx).
		Table("products AS p").
		Select("p.id AS product_id, p.product_name, p.category_id, " +
			categoryNameExpr + " AS category_name, " +
			productPriceExpr + " AS price, " +
			"COALESCE(rv.avg_rating, 0) AS avg_rating, COALESCE(rv.review_count, 0) AS review_count").
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Joins("LEFT JOIN (?) AS rv ON rv.product_id = p.id", approvedReviews(r.DB)).
		Where("p.category_id IN ?", q.CategoryIDs).
		Where(productPriceExpr+" BETWEEN ? AND ?", q.MinPrice, q.MaxPrice)

	if len(q.ExcludeProductIDs) > 0 {
		tx = tx.Where("p.id NOT IN ?", q.ExcludeProductIDs)
	}

	var rows []domain.ProductCandidate
	err := tx.Order("COALESCE(rv.avg_rating, 0) DESC, p.id ASC").
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find content candidates: %w", err)
	}

	return rows, nil
}

func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}
