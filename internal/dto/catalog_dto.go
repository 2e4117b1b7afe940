package dto

import "github.com/oakmart/storefront-backend/internal/models"

// ProductQuery carries the catalogue filter parameters. Zero values mean "no
// filter"; unknown sort fields fall back to default ordering instead of
// erroring.
type ProductQuery struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	InStock   bool
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

type ProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url,omitempty"`
}

type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
