package models

import (
	"time"
)

// OrderMessage is one chat message on an order's activity thread.
type OrderMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index"`
	SenderID   uint      `json:"sender_id"`
	SenderRole string    `json:"sender_role"` // "customer" or "technician"
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
