package postgres

import (
	"context"
	"fmt"

	"storefrontReco/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

// FindCustomerIDs lists active customer accounts in id order.
func (r *UserRepository) FindCustomerIDs(ctx context.Context) ([]uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.User{}).
		Where("LOWER(role) = ?", domain.RoleCustomer).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return ids, nil
}
