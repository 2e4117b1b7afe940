package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/services"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// Upload stores the raw request body in blob storage under ?filename=.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: "Blob storage not configured"})
	}

	filename := c.Query("filename")
	if filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Filename is required"})
	}

	resp, err := h.storageService.Upload(c.Context(), filename, c.Get("Content-Type"), c.Body())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Upload failed"})
	}

	return c.JSON(resp)
}
