package customer

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
)

// annotateServiceability fills in the derived Serviceable flag on an address
func annotateServiceability(address *models.Address) {
	address.Serviceable = utils.IsServiceable(
		address.Line1, address.City, address.PostalCode,
		address.Latitude, address.Longitude,
	)
}

// GetAddresses returns the customer's saved addresses with serviceability
// computed fresh for each
func GetAddresses(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var addresses []models.Address
	if err := db.DB.Where("user_id = ?", userID).Order("is_preferred DESC, id").Find(&addresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch addresses",
		})
	}

	for i := range addresses {
		annotateServiceability(&addresses[i])
	}

	return c.JSON(addresses)
}

// CreateAddress saves a new address for the customer
func CreateAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	address := new(models.Address)
	if err := c.BodyParser(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if address.Line1 == "" || address.City == "" || address.PostalCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	address.UserID = userID

	// First address becomes preferred automatically
	var count int64
	db.DB.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count)
	if count == 0 {
		address.IsPreferred = true
	}

	if err := db.DB.Create(address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create address",
		})
	}

	annotateServiceability(address)

	return c.Status(fiber.StatusCreated).JSON(address)
}

// UpdateAddress updates an existing address owned by the customer
func UpdateAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var address models.Address
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	input := new(models.Address)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	address.Label = input.Label
	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.State = input.State
	address.PostalCode = input.PostalCode
	address.Latitude = input.Latitude
	address.Longitude = input.Longitude

	if err := db.DB.Save(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update address",
		})
	}

	annotateServiceability(&address)

	return c.JSON(address)
}

// DeleteAddress removes an address owned by the customer
func DeleteAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	result := db.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete address",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Address deleted",
	})
}

// SetPreferredAddress marks one address as the checkout default
func SetPreferredAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var address models.Address
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	// Clear the previous preferred flag, then set the new one
	if err := db.DB.Model(&models.Address{}).Where("user_id = ?", userID).
		Update("is_preferred", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update preferred address",
		})
	}
	if err := db.DB.Model(&address).Update("is_preferred", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update preferred address",
		})
	}

	address.IsPreferred = true
	annotateServiceability(&address)

	return c.JSON(address)
}
