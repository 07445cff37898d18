package domain

import "time"

const (
	StrategyCollaborative = "collaborative"
	StrategyContentBased  = "content_based"
	StrategyTrending      = "trending"
	StrategyPersonalized  = "personalized"
)

var validStrategies = map[string]bool{
	StrategyCollaborative: true,
	StrategyContentBased:  true,
	StrategyTrending:      true,
	StrategyPersonalized:  true,
}

func IsValidStrategy(s string) bool {
	return validStrategies[s]
}

// CREATE TABLE public.recommendations (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id      BIGINT NOT NULL,
//     product_id   BIGINT NOT NULL,
//     strategy     TEXT NOT NULL,
//     score        DOUBLE PRECISION NOT NULL,
//     reason       TEXT,
//     is_viewed    BOOLEAN DEFAULT FALSE,
//     is_clicked   BOOLEAN DEFAULT FALSE,
//     is_purchased BOOLEAN DEFAULT FALSE,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW(),
//     CONSTRAINT uniq_reco_user_product_strategy UNIQUE (user_id, product_id, strategy)
// );

type Recommendation struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;uniqueIndex:uniq_reco_user_product_strategy,priority:1" json:"user_id"`
	ProductID   uint64    `gorm:"column:product_id;not null;uniqueIndex:uniq_reco_user_product_strategy,priority:2" json:"product_id"`
	Strategy    string    `gorm:"column:strategy;not null;uniqueIndex:uniq_reco_user_product_strategy,priority:3" json:"strategy"`
	Score       float64   `gorm:"column:score;not null" json:"score"`
	Reason      string    `gorm:"column:reason;type:text" json:"reason"`
	IsViewed    bool      `gorm:"column:is_viewed;default:false" json:"is_viewed"`
	IsClicked   bool      `gorm:"column:is_clicked;default:false" json:"is_clicked"`
	IsPurchased bool      `gorm:"column:is_purchased;default:false" json:"is_purchased"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// CandidateScore is an unpersisted scoring result of a single strategy.
type CandidateScore struct {
	ProductID uint64  `json:"product_id"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
	Strategy  string  `json:"strategy"`
}

const (
	SortByScore     = "score"
	SortByCreatedAt = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// RecommendationFilter selects stored recommendations. Nil / empty fields
// are not applied.
type RecommendationFilter struct {
	UserID     *uint
	Strategies []string
	Limit      int
	SortBy     string
	SortOrder  string
}

// RecommendationView is a stored recommendation joined with live catalog
// fields. AvgRating and ReviewCount are aggregated at query time.
type RecommendationView struct {
	ID           uint64    `gorm:"column:id" json:"id"`
	UserID       uint      `gorm:"column:user_id" json:"user_id"`
	ProductID    uint64    `gorm:"column:product_id" json:"product_id"`
	Strategy     string    `gorm:"column:strategy" json:"strategy"`
	Score        float64   `gorm:"column:score" json:"score"`
	Reason       string    `gorm:"column:reason" json:"reason"`
	IsViewed     bool      `gorm:"column:is_viewed" json:"is_viewed"`
	IsClicked    bool      `gorm:"column:is_clicked" json:"is_clicked"`
	IsPurchased  bool      `gorm:"column:is_purchased" json:"is_purchased"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	ProductName  string    `gorm:"column:product_name" json:"product_name"`
	CategoryID   uint64    `gorm:"column:category_id" json:"category_id"`
	CategoryName string    `gorm:"column:category_name" json:"category_name"`
	Price        float64   `gorm:"column:price" json:"price"`
	SalePrice    float64   `gorm:"column:sale_price" json:"sale_price"`
	Quantity     float64   `gorm:"column:quantity" json:"quantity"`
	AvgRating    float64   `gorm:"column:avg_rating" json:"avg_rating"`
	ReviewCount  int64     `gorm:"column:review_count" json:"review_count"`
}

// InteractionUpdate is a partial update applied to every strategy row of a
// (user, product) pair.
type InteractionUpdate struct {
	IsViewed    *bool    `json:"is_viewed,omitempty"`
	IsClicked   *bool    `json:"is_clicked,omitempty"`
	IsPurchased *bool    `json:"is_purchased,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Reason      *string  `json:"reason,omitempty"`
}

func (u InteractionUpdate) IsEmpty() bool {
	return u.IsViewed == nil && u.IsClicked == nil && u.IsPurchased == nil &&
		u.Score == nil && u.Reason == nil
}

// StrategyAggregate is the per-strategy rollup read from storage.
type StrategyAggregate struct {
	Strategy  string  `gorm:"column:strategy"`
	Count     int64   `gorm:"column:total"`
	Clicked   int64   `gorm:"column:clicked"`
	Purchased int64   `gorm:"column:purchased"`
	AvgScore  float64 `gorm:"column:avg_score"`
}

type StrategyStats struct {
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type RecommendationStats struct {
	Total          int64                    `json:"total"`
	Clicked        int64                    `json:"clicked"`
	Purchased      int64                    `json:"purchased"`
	ClickThrough   float64                  `json:"click_through_rate"`
	ConversionRate float64                  `json:"conversion_rate"`
	ByStrategy     map[string]StrategyStats `json:"by_strategy"`
}

// BatchResult is the outcome of generation for one user in a batch run.
type BatchResult struct {
	UserID uint   `json:"user_id"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}
