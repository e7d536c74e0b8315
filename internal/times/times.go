// Package times composes a full day of prayer times for one location, one
// date, one calculation method, and one madhab, entirely from the solar
// math in internal/astro. No network, no ephemeris service.
package times

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// ErrCalculationFailed is returned when a composed time falls outside its
// sanity range. No partial result is ever returned alongside it: a wrong
// prayer time is worse than a visible gap.
var ErrCalculationFailed = errors.New("prayer time calculation failed")

// imsakLead is the fixed Imsak offset before Fajr.
const imsakLead = 10 * time.Minute

// sunsetDepression accounts for the apparent solar radius plus standard
// atmospheric refraction at the horizon.
const sunsetDepression = 0.833

// Times holds every computed time for a single calendar day at a single
// location. Values are never mutated after composition; adjustments and
// caching always produce new instances.
type Times struct {
	// Date is the local midnight the day's times are anchored to.
	Date time.Time

	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Sunset  time.Time
	Maghrib time.Time
	Isha    time.Time

	// Derived markers. Imsak leads Fajr by a fixed interval; the night
	// markers fall inside [sunset, next sunrise).
	Imsak      time.Time
	Midnight   time.Time
	FirstThird time.Time
	LastThird  time.Time
}

// Compute composes the full set of prayer times for the calendar day that
// `date` falls on, in date's own time zone.
//
// It is a pure function of its arguments: identical inputs always produce
// identical output. High-latitude dates where a Fajr/Isha depression angle
// has no real solution yield clamped, approximate times rather than an
// error; see internal/astro.HourAngle.
func Compute(coords geo.Coordinates, date time.Time, m method.Method, md method.Madhab) (*Times, error) {
	params, err := m.Params()
	if err != nil {
		return nil, err
	}
	shadowRatio, err := md.ShadowRatio()
	if err != nil {
		return nil, err
	}

	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, date.Location())

	// UTC offset in hours for this calendar day, DST included.
	_, offsetSec := dayStart.Zone()
	utcOffset := float64(offsetSec) / 3600

	pos := astro.SunPosition(year, int(month), day)
	lat := coords.Latitude

	// Solar noon in local clock hours.
	dhuhr := 12 + utcOffset - coords.Longitude/15 - pos.EquationOfTime

	sunHA := astro.HourAngle(lat, pos.Declination, sunsetDepression) / 15
	sunrise := dhuhr - sunHA
	sunset := dhuhr + sunHA

	fajr := dhuhr - astro.HourAngle(lat, pos.Declination, params.FajrAngle)/15
	asr := dhuhr + astro.AsrHourAngle(lat, pos.Declination, shadowRatio)/15
	maghrib := sunset

	var isha float64
	if params.UsesInterval() {
		isha = maghrib + float64(params.IshaInterval)/60
	} else {
		isha = dhuhr + astro.HourAngle(lat, pos.Declination, params.IshaAngle)/15
	}

	imsak := fajr - imsakLead.Hours()

	// The night window runs from today's sunset to tomorrow's sunrise.
	nextStart := dayStart.AddDate(0, 0, 1)
	ny, nm, nd := nextStart.Date()
	_, nextOffsetSec := nextStart.Zone()
	nextPos := astro.SunPosition(ny, int(nm), nd)
	nextDhuhr := 12 + float64(nextOffsetSec)/3600 - coords.Longitude/15 - nextPos.EquationOfTime
	nextSunrise := nextDhuhr - astro.HourAngle(lat, nextPos.Declination, sunsetDepression)/15

	night := 24 - sunset + nextSunrise
	midnight := sunset + night/2
	firstThird := sunset + night/3
	lastThird := sunset + 2*night/3

	// Fold everything into [0, 24) clock hours. Isha alone may legitimately
	// pass midnight when the method defines it as an interval after Maghrib,
	// so it only gets the negative-wrap correction. The night markers stay
	// un-normalized: values past 24 simply land on the next calendar day.
	fajr = astro.NormalizeHours(fajr)
	sunrise = astro.NormalizeHours(sunrise)
	dhuhr = astro.NormalizeHours(dhuhr)
	asr = astro.NormalizeHours(asr)
	sunset = astro.NormalizeHours(sunset)
	maghrib = astro.NormalizeHours(maghrib)
	imsak = astro.NormalizeHours(imsak)
	if isha < 0 {
		isha += 24
	}

	// Sanity ranges. Violations mean the composition went off the rails
	// (NaN inputs, broken zone data); surface a typed failure instead of
	// presenting garbage timestamps.
	for _, v := range []struct {
		name  string
		hours float64
		max   float64
	}{
		{"fajr", fajr, 24},
		{"sunrise", sunrise, 24},
		{"dhuhr", dhuhr, 24},
		{"asr", asr, 24},
		{"maghrib", maghrib, 24},
		{"isha", isha, 48},
	} {
		if !(v.hours > 0 && v.hours < v.max) {
			return nil, fmt.Errorf("%w: %s=%v out of range (0, %v)", ErrCalculationFailed, v.name, v.hours, v.max)
		}
	}

	return &Times{
		Date:       dayStart,
		Fajr:       clockTime(dayStart, fajr),
		Sunrise:    clockTime(dayStart, sunrise),
		Dhuhr:      clockTime(dayStart, dhuhr),
		Asr:        clockTime(dayStart, asr),
		Sunset:     clockTime(dayStart, sunset),
		Maghrib:    clockTime(dayStart, maghrib),
		Isha:       clockTime(dayStart, isha),
		Imsak:      clockTime(dayStart, imsak),
		Midnight:   clockTime(dayStart, midnight),
		FirstThird: clockTime(dayStart, firstThird),
		LastThird:  clockTime(dayStart, lastThird),
	}, nil
}

// clockTime anchors fractional clock hours to the local day start, rounded
// to the nearest second to keep timestamps free of float noise.
func clockTime(dayStart time.Time, hours float64) time.Time {
	sec := int64(math.Round(hours * 3600))
	return dayStart.Add(time.Duration(sec) * time.Second)
}
