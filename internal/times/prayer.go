package times

import (
	"fmt"
	"time"
)

// Prayer pairs a named prayer/event with its resolved time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllNames lists every prayer/event the engine computes, in the order they
// occur through the day.
var AllNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
	"Firstthird", "Midnight", "Lastthird",
}

// DefaultNames are the prayers tracked by default.
var DefaultNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to abbreviations for status-bar output.
var ShortNames = map[string]string{
	"Fajr":       "F",
	"Sunrise":    "S",
	"Dhuhr":      "D",
	"Asr":        "A",
	"Sunset":     "St",
	"Maghrib":    "M",
	"Isha":       "I",
	"Imsak":      "Im",
	"Midnight":   "Mi",
	"Firstthird": "F3",
	"Lastthird":  "L3",
}

// Select returns the named subset of a day's times as a Prayer slice, in the
// order requested. Unknown names are an error.
func (t *Times) Select(names []string) ([]Prayer, error) {
	byName := map[string]time.Time{
		"Fajr":       t.Fajr,
		"Sunrise":    t.Sunrise,
		"Dhuhr":      t.Dhuhr,
		"Asr":        t.Asr,
		"Sunset":     t.Sunset,
		"Maghrib":    t.Maghrib,
		"Isha":       t.Isha,
		"Imsak":      t.Imsak,
		"Midnight":   t.Midnight,
		"Firstthird": t.FirstThird,
		"Lastthird":  t.LastThird,
	}

	var prayers []Prayer
	for _, name := range names {
		tm, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		prayers = append(prayers, Prayer{Name: name, Time: tm})
	}
	return prayers, nil
}

// IsValidName reports whether name is one of the computed prayers/events.
func IsValidName(name string) bool {
	for _, n := range AllNames {
		if n == name {
			return true
		}
	}
	return false
}

// NextPrayer finds the next upcoming prayer from the given slice, relative
// to now. If all prayers have passed, it returns nil (caller should roll
// over to the next day's Fajr).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil if
// none has occurred yet today.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if !prayers[i].Time.After(now) {
			current = &prayers[i]
		}
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
