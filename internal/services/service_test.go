package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/config"
	"github.com/oakmart/storefront-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RefreshToken{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SystemLog{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func seedProfile(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, db.Create(&models.Profile{
		ID:       id,
		Email:    email,
		FullName: "Test Customer",
		Role:     models.RoleUser,
	}).Error)
	return id
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, category string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Description:   name + " description",
		Price:         price,
		StockQuantity: stock,
		Category:      category,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCartItem(t *testing.T, db *gorm.DB, userID, productID uuid.UUID, quantity int) *models.CartItem {
	t.Helper()

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
