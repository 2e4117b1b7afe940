package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	// 15 electronics at increasing prices plus a few others, with spaced
	// creation times so default ordering is deterministic.
	base := time.Now().Add(-24 * time.Hour)
	for i := 1; i <= 15; i++ {
		p := models.Product{
			Name:          fmt.Sprintf("Gadget %02d", i),
			Description:   "An electronic gadget",
			Price:         float64(i * 10),
			StockQuantity: i % 4, // some out of stock
			Category:      "Electronics",
		}
		require.NoError(t, db.Create(&p).Error)
		require.NoError(t, db.Model(&p).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	book := models.Product{Name: "Cookbook", Description: "Recipes for weeknights", Price: 25, StockQuantity: 3, Category: "Books"}
	require.NoError(t, db.Create(&book).Error)
}

func TestCatalogFilterSortPaginate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	resp, err := svc.List(dto.ProductQuery{
		Category:  "Electronics",
		SortBy:    "price",
		SortOrder: "asc",
		Page:      2,
		Limit:     12,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(15), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)

	require.Len(t, resp.Products, 3)
	prev := 0.0
	for _, p := range resp.Products {
		assert.Equal(t, "Electronics", p.Category)
		assert.GreaterOrEqual(t, p.Price, prev)
		prev = p.Price
	}
}

func TestCatalogSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	resp, err := svc.List(dto.ProductQuery{Search: "COOKBOOK", Page: 1, Limit: 12})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Cookbook", resp.Products[0].Name)

	// Description text matches too.
	resp, err = svc.List(dto.ProductQuery{Search: "weeknights", Page: 1, Limit: 12})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
}

func TestCatalogPriceAndStockFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	minP, maxP := 30.0, 60.0
	resp, err := svc.List(dto.ProductQuery{
		Category: "Electronics",
		MinPrice: &minP,
		MaxPrice: &maxP,
		Page:     1,
		Limit:    20,
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 4)
	for _, p := range resp.Products {
		assert.GreaterOrEqual(t, p.Price, minP)
		assert.LessOrEqual(t, p.Price, maxP)
	}

	resp, err = svc.List(dto.ProductQuery{InStock: true, Page: 1, Limit: 50})
	require.NoError(t, err)
	for _, p := range resp.Products {
		assert.Positive(t, p.StockQuantity)
	}
}

func TestCatalogUnknownSortFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	// A hostile or typo'd sort field must not error; the page comes back in
	// default newest-first order.
	resp, err := svc.List(dto.ProductQuery{
		Category:  "Electronics",
		SortBy:    "price; DROP TABLE products",
		SortOrder: "asc",
		Page:      1,
		Limit:     5,
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 5)
	assert.Equal(t, "Gadget 15", resp.Products[0].Name)

	resp, err = svc.List(dto.ProductQuery{SortBy: "price", SortOrder: "sideways", Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Products, 5)
}

func TestCatalogCategoryAllMeansNoFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	resp, err := svc.List(dto.ProductQuery{Category: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(16), resp.Pagination.Total)
}

func TestCategoriesDistinct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	seedCatalog(t, db)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Electronics"}, categories)
}

func TestProductCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.Create(&dto.ProductRequest{Name: "No price", Description: "x", Category: "Books"})
	require.Error(t, err)

	created, err := svc.Create(&dto.ProductRequest{
		Name:          "Lamp",
		Description:   "A desk lamp",
		Price:         19.99,
		StockQuantity: 7,
		Category:      "Home",
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, &dto.ProductRequest{
		Name:          "Lamp",
		Description:   "A brighter desk lamp",
		Price:         24.99,
		StockQuantity: 5,
		Category:      "Home",
	})
	require.NoError(t, err)
	assert.InDelta(t, 24.99, updated.Price, 1e-9)

	require.NoError(t, svc.Delete(created.ID))
	require.ErrorIs(t, svc.Delete(created.ID), ErrProductNotFound)

	_, err = svc.Get(created.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}
