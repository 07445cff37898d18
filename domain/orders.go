package domain

import "time"

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

type Orders struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	OrderStatus   string    `gorm:"column:order_status;not null" json:"order_status"`
	PaymentMethod string    `gorm:"column:payment_method" json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;index;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach float64 `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal  float64 `gorm:"column:subtotal;type:numeric" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
