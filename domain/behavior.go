package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionView     = "view"
	ActionCartAdd  = "cart_add"
	ActionPurchase = "purchase"
	ActionReview   = "review"
	ActionSearch   = "search"
)

var validActionTypes = map[string]bool{
	ActionView:     true,
	ActionCartAdd:  true,
	ActionPurchase: true,
	ActionReview:   true,
	ActionSearch:   true,
}

// IsValidActionType reports whether t is one of the known behavior actions.
func IsValidActionType(t string) bool {
	return validActionTypes[t]
}

// BehaviorEvent is an append-only record of a user action. Rows are never
// updated or deleted by the recommendation engine.
type BehaviorEvent struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"column:user_id;not null;index:idx_behavior_user_created,priority:1" json:"user_id"`
	ProductID  *uint64           `gorm:"column:product_id;index" json:"product_id,omitempty"`
	ActionType string            `gorm:"column:action_type;not null" json:"action_type"`
	Metadata   datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	SessionID  *string           `gorm:"column:session_id" json:"session_id,omitempty"`
	CreatedAt  time.Time         `gorm:"column:created_at;index;index:idx_behavior_user_created,priority:2" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}

// ProductBehavior is a behavior event joined with the catalog fields the
// content-based profile needs.
type ProductBehavior struct {
	EventID      uint64    `gorm:"column:event_id"`
	ProductID    uint64    `gorm:"column:product_id"`
	ActionType   string    `gorm:"column:action_type"`
	CategoryID   uint64    `gorm:"column:category_id"`
	CategoryName string    `gorm:"column:category_name"`
	Price        float64   `gorm:"column:price"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// ProductEventCount is the number of recent behavior events for a product.
type ProductEventCount struct {
	ProductID    uint64 `gorm:"column:product_id"`
	CategoryName string `gorm:"column:category_name"`
	EventCount   int64  `gorm:"column:event_count"`
}
