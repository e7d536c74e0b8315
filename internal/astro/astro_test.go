package astro

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// JulianDay
// ---------------------------------------------------------------------------

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             float64
	}{
		{"J2000 epoch day", 2000, 1, 1, 2451544.5},
		{"mid 2024", 2024, 6, 21, 2460482.5},
		{"january handled as month 13", 2024, 1, 15, 2460324.5},
		{"february handled as month 14", 2023, 2, 28, 2460003.5},
		{"gregorian reform era", 1600, 1, 1, 2305447.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.year, tt.month, tt.day)
			if got != tt.want {
				t.Errorf("JulianDay(%d, %d, %d) = %v, want %v", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestJulianDay_HalfDayOffset(t *testing.T) {
	jd := JulianDay(2025, 3, 14)
	if frac := jd - math.Floor(jd); frac != 0.5 {
		t.Errorf("JulianDay must end in .5 (midnight), got fraction %v", frac)
	}
}

// ---------------------------------------------------------------------------
// SunPosition
// ---------------------------------------------------------------------------

func TestSunPosition_Solstices(t *testing.T) {
	// At the June solstice declination peaks near +23.44; at the December
	// solstice near -23.44. The low-order series should land within 0.1.
	summer := SunPosition(2024, 6, 21)
	if summer.Declination < 23.3 || summer.Declination > 23.5 {
		t.Errorf("June solstice declination = %v, want ~23.44", summer.Declination)
	}

	winter := SunPosition(2024, 12, 21)
	if winter.Declination > -23.3 || winter.Declination < -23.5 {
		t.Errorf("December solstice declination = %v, want ~-23.44", winter.Declination)
	}
}

func TestSunPosition_Equinox(t *testing.T) {
	// Around the March equinox declination crosses zero.
	pos := SunPosition(2024, 3, 20)
	if math.Abs(pos.Declination) > 0.5 {
		t.Errorf("equinox declination = %v, want ~0", pos.Declination)
	}
}

func TestSunPosition_EquationOfTimeRange(t *testing.T) {
	// The equation of time stays within about +-17 minutes all year.
	for month := 1; month <= 12; month++ {
		for _, day := range []int{1, 15, 28} {
			pos := SunPosition(2024, month, day)
			minutes := pos.EquationOfTime * 60
			if minutes < -18 || minutes > 18 {
				t.Errorf("equation of time on 2024-%02d-%02d = %.1f min, outside [-18, 18]", month, day, minutes)
			}
		}
	}
}

func TestSunPosition_EquationOfTimeKnownValues(t *testing.T) {
	// Early November the sun runs ~16 min ahead of the clock; mid February
	// ~14 min behind. Sign convention: positive = sundial ahead.
	nov := SunPosition(2024, 11, 3)
	if m := nov.EquationOfTime * 60; m < 15 || m > 17.5 {
		t.Errorf("EoT on Nov 3 = %.1f min, want ~16.4", m)
	}

	feb := SunPosition(2024, 2, 11)
	if m := feb.EquationOfTime * 60; m > -13 || m < -15.5 {
		t.Errorf("EoT on Feb 11 = %.1f min, want ~-14.2", m)
	}
}

func TestSunPosition_Deterministic(t *testing.T) {
	a := SunPosition(2024, 6, 21)
	b := SunPosition(2024, 6, 21)
	if a != b {
		t.Errorf("SunPosition not deterministic: %v vs %v", a, b)
	}
}

// ---------------------------------------------------------------------------
// HourAngle
// ---------------------------------------------------------------------------

func TestHourAngle_EquatorEquinox(t *testing.T) {
	// On the equator at zero declination, the sun crosses the geometric
	// horizon exactly 90 degrees (6 hours) from noon.
	got := HourAngle(0, 0, 0)
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("HourAngle(0, 0, 0) = %v, want 90", got)
	}
}

func TestHourAngle_DeeperAngleIsLater(t *testing.T) {
	// A deeper depression angle must always yield a larger hour angle.
	decl := 10.0
	sunset := HourAngle(40, decl, 0.833)
	isha := HourAngle(40, decl, 17)
	if isha <= sunset {
		t.Errorf("hour angle for 17 deg (%v) should exceed 0.833 deg (%v)", isha, sunset)
	}
}

func TestHourAngle_ClampNoSolution(t *testing.T) {
	// Deep polar winter: an 18 degree Fajr depression has no solution at
	// 80N with -23 declination. The solver must saturate, not return NaN.
	got := HourAngle(80, -23, 18)
	if math.IsNaN(got) {
		t.Fatal("HourAngle returned NaN for unsolvable polar case")
	}
	if got != 0 && got != 180 {
		t.Errorf("clamped hour angle = %v, want a saturated boundary (0 or 180)", got)
	}
}

func TestHourAngle_ClampMidnightSun(t *testing.T) {
	// Polar summer: the sun never reaches 0.833 below the horizon, so the
	// clamp saturates at 180 degrees (12 hours).
	got := HourAngle(80, 23, 0.833)
	if math.IsNaN(got) {
		t.Fatal("HourAngle returned NaN for midnight-sun case")
	}
	if math.Abs(got-180) > 1e-9 {
		t.Errorf("midnight-sun hour angle = %v, want 180", got)
	}
}

// ---------------------------------------------------------------------------
// AsrHourAngle
// ---------------------------------------------------------------------------

func TestAsrHourAngle_HanafiLaterThanShafi(t *testing.T) {
	// The Hanafi double-shadow threshold is always reached after the Shafi
	// single-shadow one.
	decl := 23.0
	shafi := AsrHourAngle(40.7, decl, 1)
	hanafi := AsrHourAngle(40.7, decl, 2)
	if hanafi <= shafi {
		t.Errorf("Hanafi Asr angle (%v) should exceed Shafi (%v)", hanafi, shafi)
	}
}

func TestAsrHourAngle_BeforeSunset(t *testing.T) {
	// Asr always falls between noon and sunset.
	decl := -10.0
	asr := AsrHourAngle(30, decl, 1)
	sunset := HourAngle(30, decl, 0.833)
	if asr <= 0 || asr >= sunset {
		t.Errorf("Asr hour angle %v not in (0, sunset %v)", asr, sunset)
	}
}

func TestAsrHourAngle_NoPanicExtremes(t *testing.T) {
	for _, lat := range []float64{-89, -66, 0, 66, 89} {
		for _, decl := range []float64{-23.44, 0, 23.44} {
			got := AsrHourAngle(lat, decl, 2)
			if math.IsNaN(got) {
				t.Errorf("AsrHourAngle(%v, %v, 2) = NaN", lat, decl)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Normalization helpers
// ---------------------------------------------------------------------------

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{725, 5},
	}
	for _, tt := range tests {
		if got := Normalize360(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize360(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHours(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{24, 0},
		{25.5, 1.5},
		{-1, 23},
		{-25, 23},
	}
	for _, tt := range tests {
		if got := NormalizeHours(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeHours(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
