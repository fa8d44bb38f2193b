package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingWindowDays is how far ahead a slot can be booked.
const BookingWindowDays = 365

// SlotTemplate is a recurring daily time window. Each calendar date gets its
// own instance of every active template, with Capacity seats to hand out.
type SlotTemplate struct {
	gorm.Model
	StartTime string `json:"start_time"` // "09:00"
	EndTime   string `json:"end_time"`   // "11:00"
	Capacity  int    `json:"capacity" gorm:"default:1"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

// SlotView is a template instantiated for one date, with the remaining seats
// after existing bookings are subtracted.
type SlotView struct {
	TemplateID uint   `json:"template_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Capacity   int    `json:"capacity"`
	Available  int    `json:"available"`
}

// DaySlots is one row of the availability grid returned to the booking
// calendar.
type DaySlots struct {
	Date  string     `json:"date"` // "2006-01-02"
	Slots []SlotView `json:"slots"`
}

// Selectable reports whether the day can be picked on the calendar: at least
// one slot with a free seat.
func (d DaySlots) Selectable() bool {
	for _, s := range d.Slots {
		if s.Available > 0 {
			return true
		}
	}
	return false
}

// WithinBookingWindow reports whether date falls inside [today, today+365d].
// Both arguments are compared by calendar day, not by clock time.
func WithinBookingWindow(date, today time.Time) bool {
	day := truncateToDay(date)
	start := truncateToDay(today)
	end := start.AddDate(0, 0, BookingWindowDays)
	return !day.Before(start) && !day.After(end)
}

// ClampToBookingWindow narrows a requested [start, start+days) range to the
// booking window. Returns the adjusted start and day count; days can come back
// zero when the whole range is outside the window.
func ClampToBookingWindow(start time.Time, days int, today time.Time) (time.Time, int) {
	first := truncateToDay(today)
	last := first.AddDate(0, 0, BookingWindowDays)

	from := truncateToDay(start)
	if from.Before(first) {
		from = first
	}
	if from.After(last) {
		return from, 0
	}

	to := from.AddDate(0, 0, days-1)
	if to.After(last) {
		to = last
	}
	return from, int(to.Sub(from).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
