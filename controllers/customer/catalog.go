package customer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/redis"
)

const categoryCacheKey = "catalog:categories"

// GetCategories returns all service categories, cached in redis for 10 minutes
func GetCategories(c *fiber.Ctx) error {
	// Serve from cache when possible
	if cached, err := redis.Client.Get(redis.Ctx, categoryCacheKey).Result(); err == nil {
		var categories []models.Category
		if json.Unmarshal([]byte(cached), &categories) == nil {
			return c.JSON(categories)
		}
	}

	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}

	if payload, err := json.Marshal(categories); err == nil {
		redis.Client.Set(redis.Ctx, categoryCacheKey, payload, 10*time.Minute)
	}

	return c.JSON(categories)
}

// GetAllServices returns the service catalog with pagination and an optional
// category filter
func GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	// Calculate offset
	offset := (page - 1) * limit

	query := db.DB.Preload("Category").Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Limit(limit).Offset(offset).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	// Count total records for pagination
	var count int64
	countQuery := db.DB.Model(&models.Service{}).Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		countQuery = countQuery.Where("category_id = ?", categoryID)
	}
	countQuery.Count(&count)

	return c.JSON(fiber.Map{
		"services": services,
		"total":    count,
		"page":     page,
		"limit":    limit,
		"pages":    (int(count) + limit - 1) / limit,
	})
}

// GetService returns details for a specific service
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Preload("Category").First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.JSON(service)
}

// SearchServices searches services by name, description or category name
func SearchServices(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search keyword is required",
		})
	}

	searchQuery := fmt.Sprintf("%%%s%%", keyword)

	var services []models.Service
	if err := db.DB.Preload("Category").
		Joins("JOIN categories ON categories.id = services.category_id").
		Where("services.is_active = ?", true).
		Where("services.name ILIKE ? OR services.description ILIKE ? OR categories.name ILIKE ?",
			searchQuery, searchQuery, searchQuery).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search services",
		})
	}

	return c.JSON(services)
}
