package models

import (
	"math"
	"time"
)

// Cart is the single mutable aggregate per user. Version backs optimistic
// concurrency: a save only succeeds against the version it was read at.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	TotalPrice float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_price"`
	Version    uint       `gorm:"not null;default:0" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem snapshots the product price at the moment it was added.
// PriceAtAdd is never refreshed when the quantity of an existing line
// is incremented.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"not null;index" json:"cart_id"`
	ProductID  uint      `gorm:"not null" json:"product_id"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	PriceAtAdd float64   `gorm:"type:decimal(10,2);not null" json:"price_at_add"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FindItem returns the line item for a product, or nil.
func (c *Cart) FindItem(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RecomputeTotal restores the invariant totalPrice == sum(qty * priceAtAdd).
// Called after every mutation.
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.PriceAtAdd
	}
	c.TotalPrice = math.Round(total*100) / 100
}
