package customer

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
)

// GetProfile returns the profile of the logged-in customer
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("Addresses").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// Don't send password
	user.Password = ""

	return c.JSON(user)
}

// UpdateProfile updates name/phone and optionally the avatar image
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if name := c.FormValue("name"); name != "" {
		user.Name = name
	}
	if phone := c.FormValue("phone"); phone != "" {
		user.Phone = phone
	}

	// Avatar comes in as multipart file upload
	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read avatar file",
			})
		}
		defer f.Close()

		url, err := utils.UploadToCloudinary(f, fmt.Sprintf("avatar-%d", userID), "avatars")
		if err != nil {
			log.Printf("Avatar upload failed for user %d: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to upload avatar",
			})
		}
		user.AvatarURL = url
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// DeactivateAccount disables the account after verifying the password.
// Deactivated accounts can no longer log in.
func DeactivateAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type DeactivateInput struct {
		Password string `json:"password"`
	}
	input := new(DeactivateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid password",
		})
	}

	if err := db.DB.Model(&user).Update("is_active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account deactivated",
	})
}
