package customer

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
)

// loadCart fetches the customer's cart, creating an empty one on first use
func loadCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		if err := db.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// saveCart persists the cart's current item list in one transaction. Every
// mutation goes through here so the stored cart never lags the response.
func saveCart(cart *models.Cart) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
			if err := tx.Create(&cart.Items[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(cart).Update("updated_at", time.Now()).Error
	})
}

func cartResponse(cart *models.Cart) fiber.Map {
	return fiber.Map{
		"items":       cart.Items,
		"total_items": cart.TotalItems(),
		"summary":     cart.Summary(),
	}
}

// GetCart returns the customer's cart with its price summary
func GetCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	return c.JSON(cartResponse(cart))
}

// AddCartItem adds a service to the cart, bumping quantity if it is already
// there
func AddCartItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type AddInput struct {
		ServiceID uint `json:"service_id"`
	}
	input := new(AddInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Snapshot the service at add time
	var service models.Service
	if err := db.DB.Preload("Category").First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if !service.IsActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Service is no longer available",
		})
	}

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	cart.AddItem(models.CartItem{
		ServiceID:    service.ID,
		ServiceName:  service.Name,
		CategoryID:   service.CategoryID,
		CategoryName: service.Category.Name,
		Price:        service.Price,
		Duration:     service.Duration,
		ImageURL:     service.ImageURL,
	})

	if err := saveCart(cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	return c.JSON(cartResponse(cart))
}

// UpdateCartItem sets the quantity for a cart line; zero or negative removes
// it
func UpdateCartItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type UpdateInput struct {
		ServiceID uint `json:"service_id"`
		Quantity  int  `json:"quantity"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	cart.SetQuantity(input.ServiceID, input.Quantity)

	if err := saveCart(cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	return c.JSON(cartResponse(cart))
}

// RemoveCartItem deletes one service from the cart
func RemoveCartItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	serviceID, err := c.ParamsInt("serviceId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service id",
		})
	}

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	cart.RemoveItem(uint(serviceID))

	if err := saveCart(cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update cart",
		})
	}

	return c.JSON(cartResponse(cart))
}

// ClearCart empties the cart
func ClearCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	cart, err := loadCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cart",
		})
	}

	cart.Clear()

	if err := saveCart(cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear cart",
		})
	}

	return c.JSON(cartResponse(cart))
}
