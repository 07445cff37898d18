package postgres

import "gorm.io/gorm"

const (
	// effective selling price of a product row aliased p
	productPriceExpr = "CASE WHEN p.sale_price > 0 THEN p.sale_price ELSE p.normal_price END"
	// category label of a product row aliased p joined with categories c
	categoryNameExpr = "COALESCE(c.product_category, p.product_category, '')"
)

// approvedReviews aggregates approved ratings per product, for use as a
// joined subquery aliased rv.
func approvedReviews(db *gorm.DB) *gorm.DB {
	return db.Table("reviews").
		Select("product_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Where("is_approved = ?", true).
		Group("product_id")
}
