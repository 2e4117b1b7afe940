package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/identity"
	"github.com/oakmart/storefront-backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired re-reads the profile role on every privileged call. Client
// caches and configured allow-lists are never consulted here; ADMIN_EMAIL and
// ADMIN_TOKEN only gate the one-time bootstrap grant endpoint.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err != nil || !profile.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
