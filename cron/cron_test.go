package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderDatesMidDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	dates := reminderDates(now)
	assert.Len(t, dates, 1)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), dates[0])
}

func TestReminderDatesCrossMidnight(t *testing.T) {
	// At 23:30 a 00:30 slot tomorrow is 60 minutes out and must be reachable
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	dates := reminderDates(now)
	assert.Len(t, dates, 2)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), dates[1])
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	assert.True(t, reminderDue(now.Add(45*time.Minute), now))
	assert.True(t, reminderDue(now.Add(60*time.Minute), now))
	assert.True(t, reminderDue(now.Add(75*time.Minute), now))

	assert.False(t, reminderDue(now.Add(44*time.Minute), now))
	assert.False(t, reminderDue(now.Add(76*time.Minute), now))
	assert.False(t, reminderDue(now.Add(-30*time.Minute), now))
}
