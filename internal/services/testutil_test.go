package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/srinibas-vastra/backend/internal/database"
	"github.com/srinibas-vastra/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{ID: uuid.New(), Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createApprovedSeller(t *testing.T, db *gorm.DB, email string) *models.SellerProfile {
	t.Helper()
	user := createUser(t, db, email)
	profile := models.SellerProfile{
		UserID:               user.ID,
		ShopName:             "Test Shop",
		GSTNumber:            "22AAAAA0000A1Z5",
		IsRequestedForSeller: true,
		IsApprovedByAdmin:    true,
		Status:               models.SellerStatusApproved,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create seller profile: %v", err)
	}
	return &profile
}

func createProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := models.Product{
		SellerID:    sellerID,
		Name:        "Sambalpuri Silk Saree",
		Description: "Handwoven ikat silk",
		Price:       4999,
		Stock:       5,
		IsAvailable: true,
		Category:    "saree",
		Occasion:    datatypes.JSON(`["wedding"]`),
		Images:      datatypes.JSON(`[]`),
	}
	if mutate != nil {
		mutate(&product)
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return &product
}
