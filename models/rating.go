package models

import (
	"gorm.io/gorm"
)

type Rating struct {
	gorm.Model
	Score     float64 `json:"score" gorm:"type:decimal(2,1);not null"`
	Comment   string  `json:"comment"`
	OrderID   uint    `json:"order_id" gorm:"uniqueIndex"`
	Order     Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	UserID    uint    `json:"user_id"`
	ServiceID uint    `json:"service_id"`
}

// BeforeCreate hook to clamp the score into the 1.0-5.0 range
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.Score < 1.0 {
		r.Score = 1.0
	} else if r.Score > 5.0 {
		r.Score = 5.0
	}
	return nil
}
