package customer

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
	"github.com/fixzep/fixzep-server/ws"
)

type CheckoutInput struct {
	AddressID      uint                 `json:"address_id"`
	ScheduledDate  string               `json:"scheduled_date"` // "2006-01-02"
	SlotTemplateID uint                 `json:"slot_template_id"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
}

// lineResult reports the outcome of one submitted cart line.
type lineResult struct {
	ServiceID uint          `json:"service_id"`
	Order     *models.Order `json:"order,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// CreateOrders submits the customer's cart as one order per cart line.
// Lines settle independently: a failed line never rolls back the lines that
// already succeeded, and the response reports how many made it. Any success
// clears the cart.
func CreateOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.PaymentMethod != models.PaymentCash && input.PaymentMethod != models.PaymentOnline {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "payment_method must be cash or online",
		})
	}

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}
	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart is empty",
		})
	}

	// Address must belong to the caller and be inside the service area
	var address models.Address
	if err := db.DB.Where("id = ? AND user_id = ?", input.AddressID, userID).First(&address).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}
	annotateServiceability(&address)
	if !address.Serviceable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Address is outside the serviceable area",
		})
	}

	now := utils.ToIST(time.Now())
	scheduledDate, err := time.ParseInLocation("2006-01-02", input.ScheduledDate, now.Location())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid scheduled_date, expected YYYY-MM-DD",
		})
	}
	if !models.WithinBookingWindow(scheduledDate, now) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Selected date is outside the booking window",
		})
	}

	var slot models.SlotTemplate
	if err := db.DB.Where("id = ? AND is_active = ?", input.SlotTemplateID, true).First(&slot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Time slot not found",
		})
	}

	var taken int64
	db.DB.Model(&models.Order{}).
		Where("scheduled_date = ? AND slot_template_id = ? AND status <> ?",
			scheduledDate, slot.ID, models.OrderCanceled).
		Count(&taken)
	if int(taken) >= slot.Capacity {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Selected time slot is fully booked",
		})
	}

	results, createdCount := settleCart(cart, func(item models.CartItem) (*models.Order, error) {
		return createOrderLine(userID, item, &address, scheduledDate, &slot, input.PaymentMethod)
	})

	for _, r := range results {
		if r.Order != nil {
			ws.BroadcastToUser(userID, "order_created", r.Order)
		}
	}

	if createdCount > 0 {
		if err := saveCart(cart); err != nil {
			log.Printf("Failed to clear cart after checkout for user %d: %v", userID, err)
		}
	}

	status := fiber.StatusCreated
	if createdCount == 0 {
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"message": settlementMessage(createdCount, len(results)),
		"created": createdCount,
		"results": results,
	})
}

// settleCart submits each cart line through create and collects per-line
// outcomes. Lines settle independently: a failed line never rolls back the
// lines that already succeeded, and any success empties the cart. Failed
// lines are reported, not retried.
func settleCart(cart *models.Cart, create func(models.CartItem) (*models.Order, error)) ([]lineResult, int) {
	results := make([]lineResult, 0, len(cart.Items))
	created := 0
	for _, item := range cart.Items {
		order, err := create(item)
		if err != nil {
			log.Printf("Order line failed for service %d: %v", item.ServiceID, err)
			results = append(results, lineResult{ServiceID: item.ServiceID, Error: err.Error()})
			continue
		}
		created++
		results = append(results, lineResult{ServiceID: item.ServiceID, Order: order})
	}
	if created > 0 {
		cart.Clear()
	}
	return results, created
}

func settlementMessage(created, total int) string {
	return fmt.Sprintf("%d of %d orders created", created, total)
}

func createOrderLine(userID uint, item models.CartItem, address *models.Address,
	scheduledDate time.Time, slot *models.SlotTemplate, method models.PaymentMethod) (*models.Order, error) {

	order := models.Order{
		UserID:         userID,
		ServiceID:      item.ServiceID,
		Quantity:       item.Quantity,
		AddressID:      address.ID,
		ScheduledDate:  scheduledDate,
		SlotTemplateID: slot.ID,
		SlotStart:      slot.StartTime,
		SlotEnd:        slot.EndTime,
		PaymentMethod:  method,
		EstimatedCost:  item.Price * float64(item.Quantity),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// The snapshot may be stale; the service must still exist and be active
		var service models.Service
		if err := tx.First(&service, item.ServiceID).Error; err != nil {
			return fmt.Errorf("service %d is no longer available", item.ServiceID)
		}
		if !service.IsActive {
			return fmt.Errorf("service %q is no longer available", service.Name)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		event := models.StatusEvent{OrderID: order.ID, Status: models.OrderPending, Note: "Order placed"}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders returns the customer's order history, newest first
func GetOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var orders []models.Order
	if err := db.DB.Preload("Service").Preload("Address").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch orders",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count)

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  count,
		"page":   page,
		"limit":  limit,
		"pages":  (int(count) + limit - 1) / limit,
	})
}

// GetOrder returns one order with its status history and billing summary
func GetOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Preload("Service").Preload("Address").
		Preload("StatusHistory").Preload("JobCard").Preload("JobCard.Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Order not found",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"order":   order,
		"summary": order.JobCard.Summary(order.EstimatedCost),
	})
}

// CancelOrder cancels a pending or confirmed order
func CancelOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if !order.CanCancel() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Order cannot be canceled from status %s", order.Status),
		})
	}

	// The status save and its history event land or fail together
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return order.UpdateStatus(tx, models.OrderCanceled, "Canceled by customer")
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel order",
		})
	}

	ws.BroadcastToOrder(order.ID, "order_status", fiber.Map{
		"order_id": order.ID,
		"status":   order.Status,
	})
	ws.BroadcastToUser(userID, "order_status", fiber.Map{
		"order_id": order.ID,
		"status":   order.Status,
	})

	return c.JSON(order)
}

// GetOrderMessages returns the chat/activity thread for an order
func GetOrderMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	var messages []models.OrderMessage
	if err := db.DB.Where("order_id = ?", order.ID).Order("created_at").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	return c.JSON(messages)
}

// PostOrderMessage appends a chat message and pushes it to the order room
func PostOrderMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	type MessageInput struct {
		Body string `json:"body"`
	}
	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message body is required",
		})
	}

	message := models.OrderMessage{
		OrderID:    order.ID,
		SenderID:   userID,
		SenderRole: "customer",
		Body:       input.Body,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	ws.BroadcastToOrder(order.ID, "order_message", message)

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetJobCard returns the job card for an order with the billing summary.
// The summary subtotal falls back from final amount to estimate+additional
// to the order's estimated cost.
func GetJobCard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Preload("JobCard").Preload("JobCard.Items").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if order.JobCard == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No job card for this order yet",
		})
	}

	return c.JSON(fiber.Map{
		"job_card": order.JobCard,
		"summary":  order.JobCard.Summary(order.EstimatedCost),
	})
}

// ReviewJobCardItem lets the customer approve or reject an additional
// parts/labor line the technician proposed
func ReviewJobCardItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")
	itemID := c.Params("itemId")

	type ReviewInput struct {
		Approve bool `json:"approve"`
	}
	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var order models.Order
	if err := db.DB.Preload("JobCard").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	if order.JobCard == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No job card for this order yet",
		})
	}

	var item models.JobCardItem
	if err := db.DB.Where("id = ? AND job_card_id = ?", itemID, order.JobCard.ID).First(&item).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job card item not found",
		})
	}
	if item.Status != models.JobItemProposed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Item has already been reviewed",
		})
	}

	newStatus := models.JobItemRejected
	if input.Approve {
		newStatus = models.JobItemApproved
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Update("status", newStatus).Error; err != nil {
			return err
		}
		// Approved additional items roll into the job card's charges
		if newStatus == models.JobItemApproved {
			return tx.Model(order.JobCard).
				Update("additional_charges", gorm.Expr("additional_charges + ?", item.Amount)).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to review job card item",
		})
	}

	item.Status = newStatus
	ws.BroadcastToOrder(order.ID, "jobcard_update", fiber.Map{
		"order_id": order.ID,
		"item":     item,
	})

	return c.JSON(item)
}
