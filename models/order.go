package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCanceled   OrderStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

type PaymentState string

const (
	PaymentUnpaid PaymentState = "unpaid"
	PaymentPaid   PaymentState = "paid"
)

// Order is one booked cart line: a single service at a quantity, scheduled to
// an address and a time slot. Checkout creates one order per cart line.
type Order struct {
	gorm.Model
	OrderNumber    string        `json:"order_number" gorm:"uniqueIndex"`
	UserID         uint          `json:"user_id" gorm:"index"`
	User           User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceID      uint          `json:"service_id"`
	Service        Service       `json:"service" gorm:"foreignKey:ServiceID"`
	Quantity       int           `json:"quantity"`
	AddressID      uint          `json:"address_id"`
	Address        Address       `json:"address" gorm:"foreignKey:AddressID"`
	ScheduledDate  time.Time     `json:"scheduled_date"`
	SlotTemplateID uint          `json:"slot_template_id"`
	SlotStart      string        `json:"slot_start"`
	SlotEnd        string        `json:"slot_end"`
	Status         OrderStatus   `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	PaymentState   PaymentState  `json:"payment_state"`
	EstimatedCost  float64       `json:"estimated_cost"` // price x quantity at booking time
	StatusHistory  []StatusEvent `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	JobCard        *JobCard      `json:"job_card,omitempty" gorm:"foreignKey:OrderID"`
}

// StatusEvent is one entry of an order's activity history.
type StatusEvent struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"index"`
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("FZ-%s", uuid.New().String()[:8])
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.PaymentState == "" {
		o.PaymentState = PaymentUnpaid
	}
	return nil
}

// UpdateStatus moves the order through its lifecycle and records the change.
func (o *Order) UpdateStatus(tx *gorm.DB, newStatus OrderStatus, note string) error {
	switch o.Status {
	case OrderPending:
		if newStatus != OrderConfirmed && newStatus != OrderCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case OrderConfirmed:
		if newStatus != OrderInProgress && newStatus != OrderCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case OrderInProgress:
		if newStatus != OrderCompleted {
			return fmt.Errorf("invalid transition from in_progress to %s", newStatus)
		}
	case OrderCompleted, OrderCanceled:
		return fmt.Errorf("no transitions allowed from %s", o.Status)
	}

	o.Status = newStatus
	if err := tx.Save(o).Error; err != nil {
		return err
	}

	event := StatusEvent{OrderID: o.ID, Status: newStatus, Note: note}
	return tx.Create(&event).Error
}

// CanCancel reports whether the customer may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}
