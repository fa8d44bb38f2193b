package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fixzep/fixzep-server/db"
	"github.com/fixzep/fixzep-server/models"
	"github.com/fixzep/fixzep-server/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every 15 minutes to catch slots starting in the next hour
	_, err := c.AddFunc("*/15 * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders finds confirmed orders whose slot starts within the
// next hour and emails the customer
func sendBookingReminders() {
	now := utils.ToIST(time.Now())

	var orders []models.Order
	err := db.DB.Preload("User").Preload("Service").Preload("Address").
		Where("status = ? AND scheduled_date IN ?", models.OrderConfirmed, reminderDates(now)).
		Find(&orders).Error
	if err != nil {
		log.Printf("Error fetching orders for reminders: %v", err)
		return
	}

	for _, order := range orders {
		slotStart, err := time.ParseInLocation("2006-01-02 15:04",
			order.ScheduledDate.Format("2006-01-02")+" "+order.SlotStart, now.Location())
		if err != nil {
			continue
		}
		if !reminderDue(slotStart, now) {
			continue
		}

		if err := sendReminderEmail(&order); err != nil {
			log.Printf("Failed to send reminder for order %s: %v", order.OrderNumber, err)
			continue
		}
		log.Printf("Sent reminder for order %s to %s", order.OrderNumber, order.User.Email)
	}
}

// reminderDates returns the scheduled dates a due slot can fall on. Late in
// the evening the lookahead crosses midnight, so tomorrow is included too.
func reminderDates(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dates := []time.Time{today}

	horizon := now.Add(75 * time.Minute)
	horizonDay := time.Date(horizon.Year(), horizon.Month(), horizon.Day(), 0, 0, 0, 0, horizon.Location())
	if horizonDay.After(today) {
		dates = append(dates, horizonDay)
	}
	return dates
}

// reminderDue reports whether the slot starts 45 to 75 minutes from now, the
// window one 15-minute sweep covers without double-sending.
func reminderDue(slotStart, now time.Time) bool {
	until := slotStart.Sub(now)
	return until >= 45*time.Minute && until <= 75*time.Minute
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(order *models.Order) error {
	subject := fmt.Sprintf("Reminder: Your %s booking is in one hour", order.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your booked service starts in about an hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Order:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Slot:</strong> %s - %s</li>
			<li><strong>Address:</strong> %s, %s</li>
		</ul>
		<p>Our technician will reach out before arriving. If you need to reschedule or cancel, do so from your orders page.</p>
		<p>Best regards,</p>
		<p>Team FixZep</p>
	`, order.User.Name, order.OrderNumber, order.Service.Name,
		order.ScheduledDate.Format("2006-01-02"),
		order.SlotStart, order.SlotEnd,
		order.Address.Line1, order.Address.City)

	return utils.SendEmail(order.User.Email, subject, body)
}
