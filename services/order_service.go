package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
	"github.com/chenpihouse/restaurant-app/utils"
)

// OrderService turns carts into orders and drives the order status machine.
type OrderService struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
	events OrderEventPublisher
}

// NewOrderService builds the service. events may be nil; publishing is then
// skipped.
func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, events OrderEventPublisher) *OrderService {
	return &OrderService{orders: orders, carts: carts, events: events}
}

// PlaceOrder snapshots the user's non-empty cart into a pending order, then
// empties the cart. The order is written first; the clear is idempotent and
// retried, so a failed clear can never double-charge — the order already
// exists and re-running the clear is harmless.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, paymentMethod string) (*models.Order, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		OrderNumber:   newOrderNumber(),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		TotalAmount:   cart.TotalPrice,
		PaymentMethod: paymentMethod,
		Items:         make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.PriceAtAdd,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.clearCart(ctx, userID); err != nil {
		// The order stands; the cart will be cleared on a later attempt.
		utils.ErrorLogger.Printf("order %s created but cart clear failed: %v", order.OrderNumber, err)
	}

	s.publish(ctx, EventOrderCreated, order)
	return order, nil
}

// UpdateStatus applies one transition of the order state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, ErrUnknownStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Transition(status); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderStatusChanged, order)
	return order, nil
}

// GetUserOrder loads an order and enforces ownership. Someone else's order
// is indistinguishable from a missing one.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// PickupQRCode renders the order number as a PNG for counter pickup.
func (s *OrderService) PickupQRCode(ctx context.Context, userID, orderID uint) ([]byte, error) {
	order, err := s.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
}

func (s *OrderService) clearCart(ctx context.Context, userID uint) error {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		cart, err := s.carts.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		cart.Items = []models.CartItem{}
		cart.RecomputeTotal()

		lastErr = s.carts.Save(ctx, cart)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, repository.ErrConflict) {
			return lastErr
		}
	}
	return lastErr
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.events == nil {
		return
	}
	event := OrderEvent{
		Type:        eventType,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		utils.ErrorLogger.Printf("failed to publish %s for order %s: %v", eventType, order.OrderNumber, err)
	}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
