package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestWithinBookingWindow(t *testing.T) {
	assert.True(t, WithinBookingWindow(today, today))
	assert.True(t, WithinBookingWindow(today.AddDate(0, 0, 1), today))
	assert.True(t, WithinBookingWindow(today.AddDate(0, 0, BookingWindowDays), today))

	assert.False(t, WithinBookingWindow(today.AddDate(0, 0, -1), today))
	assert.False(t, WithinBookingWindow(today.AddDate(0, 0, BookingWindowDays+1), today))
}

func TestWithinBookingWindowIgnoresClockTime(t *testing.T) {
	// Earlier the same day still counts as today
	earlier := time.Date(2025, 6, 15, 0, 5, 0, 0, time.UTC)
	assert.True(t, WithinBookingWindow(earlier, today))
}

func TestClampToBookingWindowPastStart(t *testing.T) {
	start, days := ClampToBookingWindow(today.AddDate(0, 0, -10), 7, today)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 7, days)
}

func TestClampToBookingWindowTruncatesTail(t *testing.T) {
	start, days := ClampToBookingWindow(today.AddDate(0, 0, BookingWindowDays-2), 10, today)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, BookingWindowDays-2), start)
	assert.Equal(t, 3, days)
}

func TestClampToBookingWindowFullyOutside(t *testing.T) {
	_, days := ClampToBookingWindow(today.AddDate(0, 0, BookingWindowDays+30), 7, today)
	assert.Equal(t, 0, days)

	_, days = ClampToBookingWindow(today.AddDate(-1, 0, 0), 7, today)
	assert.Equal(t, 7, days) // starts in the past, clamps forward to today
}

func TestDaySlotsSelectable(t *testing.T) {
	empty := DaySlots{Date: "2025-06-20"}
	assert.False(t, empty.Selectable())

	full := DaySlots{Date: "2025-06-20", Slots: []SlotView{
		{StartTime: "09:00", EndTime: "11:00", Capacity: 3, Available: 0},
	}}
	assert.False(t, full.Selectable())

	open := DaySlots{Date: "2025-06-20", Slots: []SlotView{
		{StartTime: "09:00", EndTime: "11:00", Capacity: 3, Available: 0},
		{StartTime: "11:00", EndTime: "13:00", Capacity: 3, Available: 1},
	}}
	assert.True(t, open.Selectable())
}
