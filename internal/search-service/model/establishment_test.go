package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpeningHours_IsOpenAt(t *testing.T) {
	hours := OpeningHours{
		"mon": {{Open: "09:00", Close: "17:00"}},
		"fri": {{Open: "18:00", Close: "02:00"}},
		"sun": {{Open: "00:00", Close: "00:00"}},
		"tue": {{Open: "bad", Close: "17:00"}},
	}
	// 2024-01-01 is a Monday
	day := func(d, h, m int) time.Time {
		return time.Date(2024, 1, d, h, m, 0, 0, time.UTC)
	}

	testCases := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{name: "Inside range", at: day(1, 12, 0), expected: true},
		{name: "At open time", at: day(1, 9, 0), expected: true},
		{name: "At close time", at: day(1, 17, 0), expected: false},
		{name: "Before open", at: day(1, 8, 59), expected: false},
		{name: "Overnight same day", at: day(5, 23, 30), expected: true},
		{name: "Overnight next day", at: day(6, 1, 30), expected: true},
		{name: "Overnight after close", at: day(6, 2, 0), expected: false},
		{name: "All day", at: day(7, 3, 0), expected: true},
		{name: "Malformed range", at: day(2, 12, 0), expected: false},
		{name: "No hours for weekday", at: day(3, 12, 0), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, hours.IsOpenAt(tc.at, time.UTC))
		})
	}
}

func TestEstablishment_IsOpenAt_Timezone(t *testing.T) {
	e := Establishment{
		Timezone:     "America/New_York",
		OpeningHours: OpeningHours{"mon": {{Open: "09:00", Close: "17:00"}}},
	}
	// 14:00 UTC is 09:00 in New York in January
	assert.True(t, e.IsOpenAt(time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)))
	assert.False(t, e.IsOpenAt(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))

	e.Timezone = "Not/AZone"
	assert.True(t, e.IsOpenAt(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
}

func TestEstablishment_IsOpenAt_NoHours(t *testing.T) {
	assert.False(t, Establishment{}.IsOpenAt(time.Now()))
}
