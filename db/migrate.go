package db

import (
	"fmt"
	"log"

	"github.com/fixzep/fixzep-server/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Address{},
		&models.Cart{},
		&models.CartItem{},
		&models.SlotTemplate{},
		&models.Order{},
		&models.StatusEvent{},
		&models.JobCard{},
		&models.JobCardItem{},
		&models.Payment{},
		&models.OrderMessage{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedSlotTemplates()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedSlotTemplates creates the default daily booking windows if none exist
func seedSlotTemplates() {
	var count int64
	DB.Model(&models.SlotTemplate{}).Count(&count)
	if count > 0 {
		return
	}

	templates := []models.SlotTemplate{
		{StartTime: "09:00", EndTime: "11:00", Capacity: 3, IsActive: true},
		{StartTime: "11:00", EndTime: "13:00", Capacity: 3, IsActive: true},
		{StartTime: "13:00", EndTime: "15:00", Capacity: 3, IsActive: true},
		{StartTime: "15:00", EndTime: "17:00", Capacity: 3, IsActive: true},
		{StartTime: "17:00", EndTime: "19:00", Capacity: 2, IsActive: true},
	}
	for _, t := range templates {
		if err := DB.Create(&t).Error; err != nil {
			log.Printf("Failed to seed slot template %s-%s: %v", t.StartTime, t.EndTime, err)
		}
	}
	log.Println("Seeded default slot templates")
}
