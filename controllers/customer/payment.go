package customer

import (
	"log"
	"math"
	"os"

	"github.com/gofiber/fiber/v2"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
	"github.com/fixzep/fixzep-server/ws"
)

func gatewayClient() *razorpay.Client {
	return razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
}

// InitPaymentWithOrders creates a payment intent for the whole cart before
// checkout: the amount is the sum of estimated costs across cart lines. The
// gateway order id and key are returned for the checkout widget; the actual
// orders are created afterwards by the order endpoint.
func InitPaymentWithOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

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

	amount := cart.TotalPrice()
	receipt := utils.GenerateReceiptID()

	// Razorpay wants the amount in paise
	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": "INR",
		"receipt":  receipt,
	}
	gatewayOrder, err := gatewayClient().Order.Create(data, nil)
	if err != nil {
		log.Printf("Gateway order creation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to initialize payment",
		})
	}

	gatewayOrderID, _ := gatewayOrder["id"].(string)

	payment := models.Payment{
		UserID:         userID,
		Amount:         amount,
		Currency:       "INR",
		Method:         models.PaymentOnline,
		Status:         models.PaymentStatusCreated,
		ReceiptID:      receipt,
		GatewayOrderID: gatewayOrderID,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment_id":       payment.ID,
		"gateway_order_id": gatewayOrderID,
		"key_id":           os.Getenv("RAZORPAY_KEY_ID"),
		"amount":           amount,
		"currency":         payment.Currency,
	})
}

// ConfirmPayment verifies the signature the checkout widget returned and
// marks the payment captured and its orders paid. A bad signature leaves
// everything untouched so the customer can retry.
func ConfirmPayment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ConfirmInput struct {
		GatewayOrderID   string `json:"razorpay_order_id"`
		GatewayPaymentID string `json:"razorpay_payment_id"`
		GatewaySignature string `json:"razorpay_signature"`
		OrderIDs         []uint `json:"order_ids"`
	}
	input := new(ConfirmInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var payment models.Payment
	if err := db.DB.Where("gateway_order_id = ? AND user_id = ?", input.GatewayOrderID, userID).
		First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}
	if payment.Status == models.PaymentStatusCaptured {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Payment has already been confirmed",
		})
	}

	if !utils.VerifyPaymentSignature(input.GatewayOrderID, input.GatewayPaymentID,
		input.GatewaySignature, os.Getenv("RAZORPAY_KEY_SECRET")) {
		db.DB.Model(&payment).Update("status", models.PaymentStatusFailed)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment signature verification failed",
		})
	}

	var orders []models.Order
	if len(input.OrderIDs) > 0 {
		if err := db.DB.Where("id IN ? AND user_id = ?", input.OrderIDs, userID).Find(&orders).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch orders",
			})
		}
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentStatusCaptured
		payment.GatewayPaymentID = input.GatewayPaymentID
		payment.GatewaySignature = input.GatewaySignature
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		for i := range orders {
			if err := tx.Model(&orders[i]).Update("payment_state", models.PaymentPaid).Error; err != nil {
				return err
			}
		}
		if len(orders) > 0 {
			return tx.Model(&payment).Association("Orders").Append(ordersToPointers(orders))
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to confirm payment",
		})
	}

	for _, order := range orders {
		ws.BroadcastToOrder(order.ID, "order_paid", fiber.Map{
			"order_id":   order.ID,
			"payment_id": payment.ID,
		})
	}
	ws.BroadcastToUser(userID, "payment_captured", fiber.Map{
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	})

	return c.JSON(payment)
}

// CreatePayment records a manual (cash) payment against existing orders.
// It stays pending until reconciled; cash orders are otherwise left unpaid
// by design.
func CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type PaymentInput struct {
		Amount   float64 `json:"amount"`
		OrderIDs []uint  `json:"order_ids"`
	}
	input := new(PaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}

	payment := models.Payment{
		UserID:    userID,
		Amount:    input.Amount,
		Method:    models.PaymentCash,
		Status:    models.PaymentStatusPending,
		ReceiptID: utils.GenerateReceiptID(),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if len(input.OrderIDs) > 0 {
			var orders []models.Order
			if err := tx.Where("id IN ? AND user_id = ?", input.OrderIDs, userID).Find(&orders).Error; err != nil {
				return err
			}
			return tx.Model(&payment).Association("Orders").Append(ordersToPointers(orders))
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GetPayment returns one payment record with its linked orders
func GetPayment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var payment models.Payment
	if err := db.DB.Preload("Orders").
		Where("id = ? AND user_id = ?", id, userID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	return c.JSON(payment)
}

func ordersToPointers(orders []models.Order) []*models.Order {
	out := make([]*models.Order, len(orders))
	for i := range orders {
		out[i] = &orders[i]
	}
	return out
}
