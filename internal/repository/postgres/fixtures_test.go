package postgres

import (
	"testing"

	"storefrontReco/domain"

	"gorm.io/gorm"
)

const (
	catAccessories uint64 = 9001
	catGarden      uint64 = 9002

	userBuyer   uint = 9001
	userPeer    uint = 9002
	userPending uint = 9003
	userAdmin   uint = 9004
)

func mustCreate(t *testing.T, tx *gorm.DB, value interface{}) {
	t.Helper()
	if err := tx.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

func seedCatalog(t *testing.T, tx *gorm.DB) {
	t.Helper()

	mustCreate(t, tx, &[]domain.Category{
		{CategoryID: catAccessories, ProductCategory: "Accessories"},
		{CategoryID: catGarden, ProductCategory: "Garden"},
	})
	mustCreate(t, tx, &[]domain.Product{
		{ID: 9101, CategoryID: catAccessories, ProductName: "Strap", NormalPrice: 30, Quantity: 5},
		{ID: 9102, CategoryID: catAccessories, ProductName: "Case", NormalPrice: 40, SalePrice: 28, Quantity: 5},
		{ID: 9103, CategoryID: catAccessories, ProductName: "Cheap", NormalPrice: 69.99, Quantity: 5},
		{ID: 9104, CategoryID: catAccessories, ProductName: "Low edge", NormalPrice: 70, Quantity: 5},
		{ID: 9105, CategoryID: catAccessories, ProductName: "High edge", NormalPrice: 130, Quantity: 5},
		{ID: 9106, CategoryID: catGarden, ProductName: "Hose", NormalPrice: 130.01, Quantity: 0},
		{ID: 9107, CategoryID: catAccessories, ProductName: "Clip", NormalPrice: 100, Quantity: 5},
	})
	mustCreate(t, tx, &[]domain.Review{
		{ID: 9301, UserID: userPeer, ProductID: 9104, Rating: 5, IsApproved: true},
		{ID: 9302, UserID: userBuyer, ProductID: 9104, Rating: 3, IsApproved: true},
		{ID: 9303, UserID: userPending, ProductID: 9104, Rating: 1, IsApproved: false},
	})
}

func seedUsers(t *testing.T, tx *gorm.DB) {
	t.Helper()

	mustCreate(t, tx, &[]domain.User{
		{ID: userBuyer, FullName: "Buyer", Email: "buyer-9001@example.test", Role: domain.RoleCustomer},
		{ID: userPeer, FullName: "Peer", Email: "peer-9002@example.test", Role: domain.RoleCustomer},
		{ID: userPending, FullName: "Pending", Email: "pending-9003@example.test", Role: domain.RoleCustomer},
		{ID: userAdmin, FullName: "Admin", Email: "admin-9004@example.test", Role: domain.RoleAdmin},
	})
}
