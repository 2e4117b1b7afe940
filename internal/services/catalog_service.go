package services

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

var validSortFields = map[string]bool{
	"name":           true,
	"price":          true,
	"created_at":     true,
	"stock_quantity": true,
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// List applies the catalogue filters and returns one page plus pagination
// metadata. Unknown sort fields or directions fall back to newest-first
// instead of erroring.
func (s *CatalogService) List(q dto.ProductQuery) (*dto.ProductListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}

	query := s.db.Model(&models.Product{})

	if q.Category != "" && q.Category != "all" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.InStock {
		query = query.Where("stock_quantity > ?", 0)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "created_at DESC"
	if validSortFields[q.SortBy] && (q.SortOrder == "asc" || q.SortOrder == "desc") {
		order = q.SortBy + " " + strings.ToUpper(q.SortOrder)
	}

	var products []models.Product
	offset := (q.Page - 1) * q.Limit
	if err := query.Order(order).Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return nil, err
	}

	return &dto.ProductListResponse{
		Products: products,
		Pagination: dto.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
			HasNext:    int64(q.Page*q.Limit) < total,
			HasPrev:    q.Page > 1,
		},
	}, nil
}

func (s *CatalogService) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Categories returns the distinct non-empty categories in the catalogue.
func (s *CatalogService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// ListAll returns every product newest-first, for the admin panel.
func (s *CatalogService) ListAll() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (s *CatalogService) Create(req *dto.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) Update(id uuid.UUID, req *dto.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, ErrProductNotFound
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.Category = req.Category
	product.ImageURL = req.ImageURL

	if err := s.db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func validateProduct(req *dto.ProductRequest) error {
	switch {
	case req.Name == "":
		return errors.New("name is required")
	case req.Description == "":
		return errors.New("description is required")
	case req.Price <= 0:
		return errors.New("price must be greater than zero")
	case req.StockQuantity < 0:
		return errors.New("stock quantity cannot be negative")
	case req.Category == "":
		return errors.New("category is required")
	}
	return nil
}
