package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_id      BIGINT DEFAULT 0,
//     product_name     TEXT,
//     product_category TEXT,
//     unit             TEXT,
//     normal_price     NUMERIC,
//     sale_price       NUMERIC,
//     quantity         NUMERIC,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Unit            string    `gorm:"column:unit;type:text" json:"unit"`
	NormalPrice     float64   `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	SalePrice       float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Quantity        float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductCandidate is a catalog row joined with its category name and the
// aggregate of approved reviews, as consumed by content-based scoring.
type ProductCandidate struct {
	ProductID    uint64  `gorm:"column:product_id" json:"product_id"`
	ProductName  string  `gorm:"column:product_name" json:"product_name"`
	CategoryID   uint64  `gorm:"column:category_id" json:"category_id"`
	CategoryName string  `gorm:"column:category_name" json:"category_name"`
	Price        float64 `gorm:"column:price" json:"price"`
	AvgRating    float64 `gorm:"column:avg_rating" json:"avg_rating"`
	ReviewCount  int64   `gorm:"column:review_count" json:"review_count"`
}

// ContentCandidateQuery selects products for content-based scoring.
// MinPrice and MaxPrice are inclusive.
type ContentCandidateQuery struct {
	CategoryIDs       []uint64
	ExcludeProductIDs []uint64
	MinPrice          float64
	MaxPrice          float64
	Limit             int
}

// EffectivePrice is the sale price when one is set, otherwise the normal price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.NormalPrice
}
