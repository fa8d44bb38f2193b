package models

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusCreated  PaymentStatus = "created" // gateway order issued, awaiting capture
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Payment is one payment attempt, cash or online. An online payment carries
// the gateway's order/payment/signature identifiers once confirmed; a cash
// payment stays pending until reconciled.
type Payment struct {
	gorm.Model
	UserID           uint          `json:"user_id" gorm:"index"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency" gorm:"default:INR"`
	Method           PaymentMethod `json:"method"`
	Status           PaymentStatus `json:"status"`
	ReceiptID        string        `json:"receipt_id" gorm:"uniqueIndex"`
	GatewayOrderID   string        `json:"gateway_order_id"`
	GatewayPaymentID string        `json:"gateway_payment_id"`
	GatewaySignature string        `json:"gateway_signature,omitempty"`
	Orders           []Order       `json:"orders,omitempty" gorm:"many2many:payment_orders"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	if p.Currency == "" {
		p.Currency = "INR"
	}
	return nil
}
