package model

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Establishment is owned by the catalog store; this subsystem only reads it.
type Establishment struct {
	ID           int64 `gorm:"primaryKey"`
	Name         string
	Latitude     float64
	Longitude    float64
	Category     string
	Agency       string
	Timezone     string
	OpeningHours OpeningHours `gorm:"type:jsonb;serializer:json"`
	UpdatedAt    time.Time
}

func (e Establishment) Location() GeoPoint {
	return GeoPoint{Lat: e.Latitude, Lng: e.Longitude}
}

// IsOpenAt evaluates the opening hours in the establishment's own timezone. Unknown
// timezones are evaluated in UTC.
func (e Establishment) IsOpenAt(t time.Time) bool {
	return e.OpeningHours.IsOpenAt(t, loadLocation(e.Timezone))
}

// TimeRange is a local "HH:MM" interval. A close time earlier than the open time runs
// past midnight; equal times mean open all day.
type TimeRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps a lower-case three letter weekday ("mon".."sun") to its ranges.
type OpeningHours map[string][]TimeRange

var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func (h OpeningHours) IsOpenAt(t time.Time, loc *time.Location) bool {
	if len(h) == 0 {
		return false
	}
	local := t.In(loc)
	minute := local.Hour()*60 + local.Minute()
	today := weekdayKeys[local.Weekday()]
	yesterday := weekdayKeys[(local.Weekday()+6)%7]

	for _, r := range h[today] {
		open, okOpen := parseClock(r.Open)
		closing, okClose := parseClock(r.Close)
		if !okOpen || !okClose {
			continue
		}
		switch {
		case open == closing:
			return true
		case open < closing:
			if minute >= open && minute < closing {
				return true
			}
		default:
			if minute >= open {
				return true
			}
		}
	}
	for _, r := range h[yesterday] {
		open, okOpen := parseClock(r.Open)
		closing, okClose := parseClock(r.Close)
		if !okOpen || !okClose {
			continue
		}
		if closing < open && minute < closing {
			return true
		}
	}
	return false
}

func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	if h == 24 && m != 0 {
		return 0, false
	}
	return h*60 + m, true
}

var locations sync.Map

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	locations.Store(name, loc)
	return loc
}
