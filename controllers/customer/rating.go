package customer

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
)

// RateOrder adds a rating for a completed order
func RateOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if order.Status != models.OrderCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only completed orders can be rated",
		})
	}

	// One rating per order
	var existing models.Rating
	if db.DB.Where("order_id = ?", order.ID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already rated this order",
		})
	}

	rating := new(models.Rating)
	if err := c.BodyParser(rating); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rating data",
		})
	}

	rating.OrderID = order.ID
	rating.UserID = userID
	rating.ServiceID = order.ServiceID

	if err := db.DB.Create(rating).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create rating",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetServiceRatings returns the ratings posted for a service
func GetServiceRatings(c *fiber.Ctx) error {
	serviceID := c.Params("id")

	var ratings []models.Rating
	if err := db.DB.Where("service_id = ?", serviceID).Order("created_at DESC").Find(&ratings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch ratings",
		})
	}

	var average float64
	db.DB.Model(&models.Rating{}).Where("service_id = ?", serviceID).
		Select("COALESCE(AVG(score), 0)").Scan(&average)

	return c.JSON(fiber.Map{
		"ratings": ratings,
		"average": average,
		"count":   len(ratings),
	})
}
