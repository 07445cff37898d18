package domain

import "time"

type Review struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"column:user_id;not null" json:"user_id"`
	ProductID  uint64    `gorm:"column:product_id;index;not null" json:"product_id"`
	Rating     int       `gorm:"column:rating;not null" json:"rating"`
	IsApproved bool      `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
