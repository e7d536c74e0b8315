// Package astro implements the closed-form solar astronomy the prayer time
// engine is built on: Julian day conversion, solar declination, the equation
// of time, and the hour-angle solvers for horizon-crossing and Asr shadow
// conditions.
//
// Everything here is a pure function of its arguments. The series used are
// low-order approximations good to well under a minute of clock time, which
// is the precision regional prayer conventions themselves work at. This is
// deliberately not an almanac-grade ephemeris.
package astro

import "math"

// Position holds the two solar quantities a day's prayer times depend on.
type Position struct {
	Declination    float64 // degrees, positive north
	EquationOfTime float64 // hours, true solar time minus mean time
}

// JulianDay converts a Gregorian calendar date to the Julian Day number at
// midnight UTC. The result always carries a .5 fractional part because the
// Julian day boundary falls at noon.
func JulianDay(year, month, day int) float64 {
	y, m := year, month
	// January and February count as months 13 and 14 of the prior year.
	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5
}

// SunPosition returns the solar declination and equation of time for the
// given Gregorian date, from a low-order periodic series anchored at the
// J2000.0 epoch.
func SunPosition(year, month, day int) Position {
	d := JulianDay(year, month, day) - 2451545.0

	l := Normalize360(280.46646 + 0.9856474*d)  // mean solar longitude
	m := Normalize360(357.52911 + 0.98560028*d) // mean anomaly

	// Equation of center.
	c := 1.9146*sinDeg(m) + 0.02*sinDeg(2*m) + 0.0003*sinDeg(3*m)

	lambda := l + c                  // ecliptic longitude
	epsilon := 23.439 - 0.00000036*d // obliquity of the ecliptic

	decl := rad2Deg(math.Asin(sinDeg(epsilon) * sinDeg(lambda)))
	ra := rad2Deg(math.Atan2(cosDeg(epsilon)*sinDeg(lambda), cosDeg(lambda)))

	// Equation of time in degrees, folded into (-180, 180] so that the
	// longitude/right-ascension wraparound never produces a bogus 24h shift.
	eqt := l - ra
	if eqt > 180 {
		eqt -= 360
	} else if eqt <= -180 {
		eqt += 360
	}

	return Position{
		Declination:    decl,
		EquationOfTime: eqt / 15,
	}
}

// HourAngle returns the hour angle, in degrees from solar noon, at which the
// sun sits `angle` degrees below the horizon for an observer at the given
// latitude.
//
// The acos argument is clamped to [-1, 1]: at high latitudes or extreme
// declinations the condition may have no real solution, and the contract is
// to saturate to the boundary (a degenerate but representable time) rather
// than return NaN. Callers near the poles should treat results as advisory.
func HourAngle(latitude, declination, angle float64) float64 {
	cosH := (sinDeg(-angle) - sinDeg(latitude)*sinDeg(declination)) /
		(cosDeg(latitude) * cosDeg(declination))
	return rad2Deg(math.Acos(clamp(cosH, -1, 1)))
}

// AsrHourAngle returns the hour angle at which an object's shadow reaches
// shadowRatio times its height (plus the noon shadow), which defines the Asr
// threshold. shadowRatio is 1 for the Shafi convention and 2 for Hanafi.
// Same domain clamping as HourAngle.
func AsrHourAngle(latitude, declination, shadowRatio float64) float64 {
	altitude := rad2Deg(math.Atan(1 / (shadowRatio + tanDeg(math.Abs(latitude-declination)))))
	cosH := (sinDeg(altitude) - sinDeg(latitude)*sinDeg(declination)) /
		(cosDeg(latitude) * cosDeg(declination))
	return rad2Deg(math.Acos(clamp(cosH, -1, 1)))
}

// Normalize360 folds an angle in degrees into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// NormalizeHours folds a fractional-hours value into [0, 24).
func NormalizeHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// -----------------------------
// Degree-input trig helpers.
// -----------------------------

func deg2Rad(d float64) float64 { return d * math.Pi / 180 }
func rad2Deg(r float64) float64 { return r * 180 / math.Pi }

func sinDeg(d float64) float64 { return math.Sin(deg2Rad(d)) }
func cosDeg(d float64) float64 { return math.Cos(deg2Rad(d)) }
func tanDeg(d float64) float64 { return math.Tan(deg2Rad(d)) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
