package models

import (
	"errors"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// statusTransitions is the full state machine. Cancelled and completed are
// terminal.
var statusTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// IsValidOrderStatus reports whether s names a known status.
func IsValidOrderStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a cart at checkout time. Status changes
// are the only permitted mutation.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID" json:"-"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string      `gorm:"type:varchar(50);not null" json:"payment_method"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem carries its own copy of name and price; later catalog changes
// never reach placed orders.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Transition applies a status change, enforcing the state machine.
func (o *Order) Transition(to string) error {
	if !CanTransition(o.Status, to) {
		return ErrInvalidStatusTransition
	}
	o.Status = to
	return nil
}
