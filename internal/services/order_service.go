package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakmart/storefront-backend/internal/dto"
	"github.com/oakmart/storefront-backend/internal/mail"
	"github.com/oakmart/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrShippingAddrMissing = errors.New("shipping address is required")
)

// OrderNotifier delivers the order confirmation, either directly (Mailer) or
// via the message queue (mq.Publisher).
type OrderNotifier interface {
	NotifyOrderCreated(conf *mail.OrderConfirmation) error
}

type OrderService struct {
	db       *gorm.DB
	notifier OrderNotifier
}

func NewOrderService(db *gorm.DB, notifier OrderNotifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// Checkout places an order from the caller's cart.
//
// Cart load, stock validation and the order+items insert are prerequisites:
// any failure aborts with no side effects (the insert runs in one
// transaction). Stock decrement, cart clear and the confirmation email are
// best-effort: failures are logged and the order still stands.
//
// There is no lock on stock: two concurrent checkouts can both pass the stock
// check on the last unit. Both orders succeed; the guarded decrement only
// keeps stock_quantity from going negative.
func (s *OrderService) Checkout(userID uuid.UUID, req *dto.CheckoutRequest) (*models.Order, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, ErrShippingAddrMissing
	}

	var cartItems []models.CartItem
	if err := s.db.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	for _, line := range cartItems {
		if line.Quantity > line.Product.StockQuantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, line.Product.Name)
		}
	}

	var total float64
	for _, line := range cartItems {
		total += line.Product.Price * float64(line.Quantity)
	}

	order := models.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cartItems))
		for _, line := range cartItems {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				Price:       line.Product.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range cartItems {
		result := s.db.Model(&models.Product{}).
			Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
			Updates(map[string]interface{}{
				"stock_quantity": gorm.Expr("stock_quantity - ?", line.Quantity),
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			slog.Error("stock decrement failed", "order_id", order.ID, "product_id", line.ProductID, "error", result.Error)
		} else if result.RowsAffected == 0 {
			slog.Error("stock decrement skipped, not enough stock left", "order_id", order.ID, "product_id", line.ProductID)
		}
	}

	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		slog.Error("cart clear failed", "order_id", order.ID, "user_id", userID, "error", err)
	}

	s.dispatchConfirmation(&order, cartItems)

	return &order, nil
}

// dispatchConfirmation fires the notifier without blocking the caller.
func (s *OrderService) dispatchConfirmation(order *models.Order, cartItems []models.CartItem) {
	if s.notifier == nil {
		return
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", order.UserID).Error; err != nil {
		slog.Error("order confirmation skipped, profile missing", "order_id", order.ID, "error", err)
		return
	}

	conf := &mail.OrderConfirmation{
		CustomerName:    profile.FullName,
		CustomerEmail:   profile.Email,
		OrderID:         order.ID,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
	}
	for _, line := range cartItems {
		conf.Items = append(conf.Items, mail.OrderLine{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}

	go func() {
		if err := s.notifier.NotifyOrderCreated(conf); err != nil {
			slog.Error("order confirmation notification failed", "order_id", conf.OrderID, "error", err)
		}
	}()
}

// ListForUser returns the caller's orders newest-first with items preloaded.
func (s *OrderService) ListForUser(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) GetForUser(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// Cancel is the user status path: the only allowed target is "cancelled" and
// only from "pending".
func (s *OrderService) Cancel(userID, orderID uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if target != models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: only cancellation is allowed", ErrInvalidTransition)
	}

	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		return nil, ErrOrderNotFound
	}

	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled", ErrInvalidTransition)
	}

	order.Status = models.OrderStatusCancelled
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAll returns every order with customer profile and items, for the admin
// panel.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Profile").Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// SetStatus is the admin status path: any status in the enumerated set, with
// no transition-table enforcement.
func (s *OrderService) SetStatus(orderID uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(target) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, ErrOrderNotFound
	}

	order.Status = target
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
