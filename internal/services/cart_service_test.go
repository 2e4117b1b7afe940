package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := seedProfile(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")

	first, err := svc.Add(userID, "shopper@example.com", &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := svc.Add(userID, "shopper@example.com", &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := seedProfile(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")

	item, err := svc.Add(userID, "shopper@example.com", &dto.AddCartItemRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartAddRejectsUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := seedProfile(t, db, "shopper@example.com")

	_, err := svc.Add(userID, "shopper@example.com", &dto.AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartAddBackfillsMissingProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	// An identity without a profile row, as created before registration-time
	// provisioning.
	userID := uuid.New()
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")

	_, err := svc.Add(userID, "legacy@example.com", &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", userID).Error)
	assert.Equal(t, "legacy@example.com", profile.Email)
	assert.Equal(t, "legacy", profile.FullName)
	assert.Equal(t, models.RoleUser, profile.Role)

	// Running it again must not duplicate or overwrite.
	require.NoError(t, svc.EnsureProfile(userID, "other@example.com"))
	require.NoError(t, db.First(&profile, "id = ?", userID).Error)
	assert.Equal(t, "legacy@example.com", profile.Email)
}

func TestCartUpdateQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := seedProfile(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")
	item := seedCartItem(t, db, userID, product.ID, 1)

	updated, err := svc.UpdateQuantity(userID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// The returned line carries full product detail.
	assert.Equal(t, "Mug", updated.Product.Name)
	assert.InDelta(t, 8.50, updated.Product.Price, 1e-9)

	// Only the cart line changes; the product row stays untouched.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 10, reloaded.StockQuantity)
	assert.InDelta(t, 8.50, reloaded.Price, 1e-9)

	_, err = svc.UpdateQuantity(userID, item.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartOwnershipHidesOtherUsersLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	owner := seedProfile(t, db, "owner@example.com")
	intruder := seedProfile(t, db, "intruder@example.com")
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")
	item := seedCartItem(t, db, owner, product.ID, 2)

	_, err := svc.UpdateQuantity(intruder, item.ID, 5)
	require.ErrorIs(t, err, ErrCartItemNotFound)

	require.ErrorIs(t, svc.Remove(intruder, item.ID), ErrCartItemNotFound)

	items, err := svc.List(intruder)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Owner still sees the untouched line.
	items, err = svc.List(owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := seedProfile(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Mug", 8.50, 10, "Home")
	item := seedCartItem(t, db, userID, product.ID, 1)

	require.NoError(t, svc.Remove(userID, item.ID))
	require.ErrorIs(t, svc.Remove(userID, item.ID), ErrCartItemNotFound)
}
