package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the customer's persisted cart. One cart per user; every mutation is
// saved in the same request that performed it.
type Cart struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is a snapshot of a service at the moment it was added. Items are
// unique by ServiceID and quantity is always at least 1.
type CartItem struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	CartID       uint          `json:"cart_id" gorm:"index"`
	ServiceID    uint          `json:"service_id"`
	ServiceName  string        `json:"service_name"`
	CategoryID   uint          `json:"category_id"`
	CategoryName string        `json:"category_name"`
	Price        float64       `json:"price"`
	Duration     time.Duration `json:"duration,omitempty"`
	Quantity     int           `json:"quantity"`
	ImageURL     string        `json:"image_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AddItem adds a service to the cart. If the service is already present only
// its quantity is bumped; the incoming snapshot is ignored. New items always
// start at quantity 1.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ServiceID == item.ServiceID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the entry for the given service. Removing a service that
// is not in the cart is a no-op.
func (c *Cart) RemoveItem(serviceID uint) {
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity for a service. A quantity of zero or less
// removes the item.
func (c *Cart) SetQuantity(serviceID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(serviceID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalPrice returns the sum of price x quantity over all items.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalItems returns the total quantity across all items.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Summary returns the price breakdown for the current cart contents.
func (c *Cart) Summary() PriceSummary {
	return Totals(c.TotalPrice())
}
