package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAdminTestApp(t *testing.T, db *gorm.DB, userID uuid.UUID) *fiber.App {
	t.Helper()

	app := fiber.New()
	if userID != uuid.Nil {
		// Stand-in for the JWT middleware: put parsed claims in context.
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
				"sub": userID.String(),
			}})
			return c.Next()
		})
	}
	app.Get("/admin-only", AdminRequired(db), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func newMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Profile{}))
	return db
}

func TestAdminRequiredNoToken(t *testing.T) {
	db := newMiddlewareTestDB(t)
	app := newAdminTestApp(t, db, uuid.Nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredNonAdmin(t *testing.T) {
	db := newMiddlewareTestDB(t)

	userID := uuid.New()
	require.NoError(t, db.Create(&models.Profile{
		ID: userID, Email: "user@example.com", Role: models.RoleUser,
	}).Error)

	app := newAdminTestApp(t, db, userID)
	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredMissingProfile(t *testing.T) {
	db := newMiddlewareTestDB(t)

	app := newAdminTestApp(t, db, uuid.New())
	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredAdmin(t *testing.T) {
	db := newMiddlewareTestDB(t)

	adminID := uuid.New()
	require.NoError(t, db.Create(&models.Profile{
		ID: adminID, Email: "admin@example.com", Role: models.RoleAdmin,
	}).Error)

	app := newAdminTestApp(t, db, adminID)
	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
