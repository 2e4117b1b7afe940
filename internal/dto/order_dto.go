package dto

import "github.com/oakmart/storefront-backend/internal/models"

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}
