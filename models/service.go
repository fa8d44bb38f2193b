package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"unique;not null"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	Services    []Service `json:"services,omitempty" gorm:"foreignKey:CategoryID"`
}

type Service struct {
	gorm.Model
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"image_url"`
	CategoryID  uint          `json:"category_id"`
	Category    Category      `json:"category" gorm:"foreignKey:CategoryID"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
}
