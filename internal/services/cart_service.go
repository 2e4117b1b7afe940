package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// List returns the caller's cart lines with product detail, newest first.
func (s *CartService) List(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Add merges into an existing (user, product) line or inserts a new one. The
// profile row is ensured first so the cart's foreign key always resolves.
func (s *CartService) Add(userID uuid.UUID, email string, req *dto.AddCartItemRequest) (*models.CartItem, error) {
	if req.ProductID == uuid.Nil {
		return nil, errors.New("product ID is required")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		return nil, ErrProductNotFound
	}

	if err := s.EnsureProfile(userID, email); err != nil {
		return nil, err
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	if err == nil {
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
		item.Product = product
		return &item, nil
	}

	item = models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  quantity,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	item.Product = product
	return &item, nil
}

// UpdateQuantity changes a line's quantity. Ownership is a query filter, not
// a separate check: someone else's line looks like a missing one.
func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	if err := s.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, ErrCartItemNotFound
	}

	if err := s.db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return &item, nil
}

func (s *CartService) Remove(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// EnsureProfile backfills a profile row for identities created before
// registration-time provisioning existed. Idempotent.
func (s *CartService) EnsureProfile(userID uuid.UUID, email string) error {
	var profile models.Profile
	err := s.db.First(&profile, "id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile = models.Profile{
		ID:       userID,
		Email:    email,
		FullName: strings.Split(email, "@")[0],
		Role:     models.RoleUser,
	}
	return s.db.Create(&profile).Error
}
