package customer

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
)

// GetTimeSlots returns the availability grid for the booking calendar:
// every active slot template instantiated per date, with remaining seats.
// The requested range is clamped to the 365-day booking window.
func GetTimeSlots(c *fiber.Ctx) error {
	now := utils.ToIST(time.Now())

	start := now
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid startDate, expected YYYY-MM-DD",
			})
		}
		start = parsed
	}

	days, _ := strconv.Atoi(c.Query("days", "7"))
	if days < 1 {
		days = 1
	}

	start, days = models.ClampToBookingWindow(start, days, now)
	if days == 0 {
		return c.JSON([]models.DaySlots{})
	}

	var templates []models.SlotTemplate
	if err := db.DB.Where("is_active = ?", true).Order("start_time").Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch time slots",
		})
	}

	// Booked seats per (date, template) over the whole range in one query
	type bookedRow struct {
		ScheduledDate  time.Time
		SlotTemplateID uint
		Count          int
	}
	var booked []bookedRow
	end := start.AddDate(0, 0, days)
	db.DB.Model(&models.Order{}).
		Select("scheduled_date, slot_template_id, count(*) as count").
		Where("scheduled_date >= ? AND scheduled_date < ? AND status <> ?",
			start, end, models.OrderCanceled).
		Group("scheduled_date, slot_template_id").
		Scan(&booked)

	bookedBy := make(map[string]int)
	for _, row := range booked {
		bookedBy[row.ScheduledDate.Format("2006-01-02")+"#"+strconv.Itoa(int(row.SlotTemplateID))] = row.Count
	}

	grid := make([]models.DaySlots, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		day := models.DaySlots{Date: date.Format("2006-01-02")}
		for _, t := range templates {
			taken := bookedBy[day.Date+"#"+strconv.Itoa(int(t.ID))]
			available := t.Capacity - taken
			if available < 0 {
				available = 0
			}
			day.Slots = append(day.Slots, models.SlotView{
				TemplateID: t.ID,
				StartTime:  t.StartTime,
				EndTime:    t.EndTime,
				Capacity:   t.Capacity,
				Available:  available,
			})
		}
		grid = append(grid, day)
	}

	return c.JSON(grid)
}
