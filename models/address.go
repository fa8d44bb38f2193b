package models

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID      uint     `json:"user_id"`
	Label       string   `json:"label"` // "home", "office", ...
	Line1       string   `json:"line1"`
	Line2       string   `json:"line2"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postal_code"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	IsPreferred bool     `json:"is_preferred" gorm:"default:false"`

	// Serviceable is derived on every read, never stored. The server is the
	// authority on the allowed service area, not the saved row.
	Serviceable bool `json:"serviceable" gorm:"-"`
}
