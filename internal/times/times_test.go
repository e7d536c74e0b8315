package times

import (
	"errors"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
)

func mustCoords(t *testing.T, lat, lon float64) geo.Coordinates {
	t.Helper()
	c, err := geo.New(lat, lon)
	if err != nil {
		t.Fatalf("geo.New(%v, %v): %v", lat, lon, err)
	}
	return c
}

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%s): %v", name, err)
	}
	return loc
}

// ---------------------------------------------------------------------------
// Compute: concrete scenarios
// ---------------------------------------------------------------------------

func TestCompute_NewYorkSolstice(t *testing.T) {
	// New York, 2024-06-21, ISNA (15/15), Shafi. Solstice declination is
	// well within solvable range at 40.7N, so nothing clamps.
	nyc := mustCoords(t, 40.7128, -74.0060)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, mustZone(t, "America/New_York"))

	got, err := Compute(nyc, date, method.ISNA, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Solar noon lands just before 13:00 EDT (longitude correction plus the
	// ~-2 min equation of time for that date).
	dhuhrMin := got.Dhuhr.Hour()*60 + got.Dhuhr.Minute()
	if dhuhrMin < 12*60+50 || dhuhrMin > 13*60+5 {
		t.Errorf("Dhuhr = %s, want between 12:50 and 13:05", got.Dhuhr.Format("15:04"))
	}

	// Ordering invariant.
	assertOrdered(t, got)

	// June solstice in NYC: Fajr well before 05:00, Isha after 21:00.
	if got.Fajr.Hour() >= 5 {
		t.Errorf("Fajr = %s, expected before 05:00", got.Fajr.Format("15:04"))
	}
	if got.Isha.Hour() < 21 {
		t.Errorf("Isha = %s, expected after 21:00", got.Isha.Format("15:04"))
	}

	// All times carry the input date's zone and day.
	if got.Dhuhr.Location() != date.Location() {
		t.Errorf("Dhuhr zone = %v, want %v", got.Dhuhr.Location(), date.Location())
	}
	if y, m, d := got.Dhuhr.Date(); y != 2024 || m != time.June || d != 21 {
		t.Errorf("Dhuhr date = %04d-%02d-%02d, want 2024-06-21", y, m, d)
	}
}

func TestCompute_MakkahUmmAlQuraInterval(t *testing.T) {
	// Umm Al-Qura defines Isha as exactly 90 minutes after Maghrib.
	makkah := mustCoords(t, 21.3891, 39.8579)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.FixedZone("AST", 3*3600))

	got, err := Compute(makkah, date, method.UmmAlQura, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := got.Isha.Sub(got.Maghrib); diff != 90*time.Minute {
		t.Errorf("Isha - Maghrib = %v, want exactly 90m", diff)
	}
	assertOrdered(t, got)
}

func TestCompute_HighLatitudeClampedAccepted(t *testing.T) {
	// 64N at the June solstice: the sun never reaches 18 degrees below the
	// horizon, so the Fajr/Isha conditions have no real solution. Policy:
	// the solver clamps and the composer accepts the result as
	// valid-but-approximate. No error, no panic, all times in range.
	far := mustCoords(t, 64.0, 25.0)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.FixedZone("EET", 2*3600))

	got, err := Compute(far, date, method.MuslimWorldLeague, method.Shafi)
	if err != nil {
		t.Fatalf("clamped high-latitude computation must not fail, got: %v", err)
	}

	for _, p := range []struct {
		name string
		tm   time.Time
	}{
		{"Fajr", got.Fajr}, {"Sunrise", got.Sunrise}, {"Dhuhr", got.Dhuhr},
		{"Asr", got.Asr}, {"Maghrib", got.Maghrib}, {"Isha", got.Isha},
	} {
		if p.tm.IsZero() {
			t.Errorf("%s is zero in clamped result", p.name)
		}
	}

	// The clamp saturates the unsolvable times onto the window boundaries,
	// so the usual ordering collapses; what must hold is that every time
	// still lands on the clock of the requested day.
	for _, tm := range []time.Time{got.Fajr, got.Sunrise, got.Dhuhr, got.Asr, got.Maghrib} {
		if tm.Before(got.Date) || !tm.Before(got.Date.AddDate(0, 0, 1)) {
			t.Errorf("clamped time %v escaped the calendar day", tm)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	nyc := mustCoords(t, 40.7128, -74.0060)
	date := time.Date(2024, 6, 21, 9, 30, 0, 0, mustZone(t, "America/New_York"))

	a, err := Compute(nyc, date, method.ISNA, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Compute(nyc, date, method.ISNA, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *a != *b {
		t.Errorf("Compute is not idempotent:\n  first  %+v\n  second %+v", a, b)
	}
}

func TestCompute_TimeOfDayIrrelevant(t *testing.T) {
	// Only the calendar day matters, not the clock time of the input.
	cairo := mustCoords(t, 30.0444, 31.2357)
	zone := time.FixedZone("EET", 2*3600)
	morning := time.Date(2025, 1, 10, 6, 0, 0, 0, zone)
	evening := time.Date(2025, 1, 10, 23, 45, 0, 0, zone)

	a, _ := Compute(cairo, morning, method.Egyptian, method.Shafi)
	b, _ := Compute(cairo, evening, method.Egyptian, method.Shafi)
	if a == nil || b == nil || *a != *b {
		t.Errorf("same-day computes differ:\n  %+v\n  %+v", a, b)
	}
}

// ---------------------------------------------------------------------------
// Compute: properties
// ---------------------------------------------------------------------------

func assertOrdered(t *testing.T, tm *Times) {
	t.Helper()
	if !tm.Fajr.Before(tm.Sunrise) {
		t.Errorf("Fajr %v not before Sunrise %v", tm.Fajr, tm.Sunrise)
	}
	if !tm.Sunrise.Before(tm.Dhuhr) {
		t.Errorf("Sunrise %v not before Dhuhr %v", tm.Sunrise, tm.Dhuhr)
	}
	if !tm.Dhuhr.Before(tm.Asr) {
		t.Errorf("Dhuhr %v not before Asr %v", tm.Dhuhr, tm.Asr)
	}
	if !tm.Asr.Before(tm.Maghrib) {
		t.Errorf("Asr %v not before Maghrib %v", tm.Asr, tm.Maghrib)
	}
	if tm.Isha.Before(tm.Maghrib) {
		t.Errorf("Isha %v before Maghrib %v", tm.Isha, tm.Maghrib)
	}
}

func TestCompute_OrderingAcrossLatitudesAndSeasons(t *testing.T) {
	// Within the solvable band [-66, 66] the ordinal prayers must always
	// come out strictly ordered, for every method and both madhabs.
	dates := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
	}

	// Above ~48 degrees the deeper Fajr angles stop having solutions near
	// the solstices and the clamp policy takes over, so the strict-ordering
	// property is asserted inside that band only.
	for _, lat := range []float64{-45, -35, -10, 0, 10, 35, 45} {
		for _, date := range dates {
			for _, m := range method.All() {
				for _, md := range []method.Madhab{method.Shafi, method.Hanafi} {
					got, err := Compute(mustCoords(t, lat, 0), date, m, md)
					if err != nil {
						t.Errorf("lat=%v date=%s method=%s: %v", lat, date.Format("2006-01-02"), m, err)
						continue
					}
					assertOrdered(t, got)
				}
			}
		}
	}
}

func TestCompute_NightWindowMarkers(t *testing.T) {
	nyc := mustCoords(t, 40.7128, -74.0060)
	date := time.Date(2024, 10, 5, 0, 0, 0, 0, mustZone(t, "America/New_York"))

	got, err := Compute(nyc, date, method.ISNA, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Tomorrow's sunrise bounds the night window.
	tomorrow, err := Compute(nyc, date.AddDate(0, 0, 1), method.ISNA, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, marker := range []struct {
		name string
		tm   time.Time
	}{
		{"FirstThird", got.FirstThird},
		{"Midnight", got.Midnight},
		{"LastThird", got.LastThird},
	} {
		if marker.tm.Before(got.Sunset) {
			t.Errorf("%s %v before sunset %v", marker.name, marker.tm, got.Sunset)
		}
		if !marker.tm.Before(tomorrow.Sunrise) {
			t.Errorf("%s %v not before next sunrise %v", marker.name, marker.tm, tomorrow.Sunrise)
		}
	}

	// Thirds and midnight are ordered within the night.
	if !got.FirstThird.Before(got.Midnight) || !got.Midnight.Before(got.LastThird) {
		t.Errorf("night markers out of order: %v, %v, %v", got.FirstThird, got.Midnight, got.LastThird)
	}
}

func TestCompute_ImsakLeadsFajr(t *testing.T) {
	cairo := mustCoords(t, 30.0444, 31.2357)
	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.FixedZone("EET", 2*3600))

	got, err := Compute(cairo, date, method.Egyptian, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := got.Fajr.Sub(got.Imsak); diff != 10*time.Minute {
		t.Errorf("Fajr - Imsak = %v, want exactly 10m", diff)
	}
}

func TestCompute_HanafiAsrLater(t *testing.T) {
	karachi := mustCoords(t, 24.8607, 67.0011)
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.FixedZone("PKT", 5*3600))

	shafi, err := Compute(karachi, date, method.Karachi, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hanafi, err := Compute(karachi, date, method.Karachi, method.Hanafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hanafi.Asr.After(shafi.Asr) {
		t.Errorf("Hanafi Asr %v not after Shafi Asr %v", hanafi.Asr, shafi.Asr)
	}

	// The madhab only moves Asr.
	if hanafi.Fajr != shafi.Fajr || hanafi.Dhuhr != shafi.Dhuhr ||
		hanafi.Maghrib != shafi.Maghrib || hanafi.Isha != shafi.Isha {
		t.Error("madhab change affected a prayer other than Asr")
	}
}

func TestCompute_InvalidMethod(t *testing.T) {
	nyc := mustCoords(t, 40.7128, -74.0060)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	_, err := Compute(nyc, date, method.Method(42), method.Shafi)
	if !errors.Is(err, method.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}

	_, err = Compute(nyc, date, method.ISNA, method.Madhab(9))
	if !errors.Is(err, method.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for bad madhab, got %v", err)
	}
}

func TestCompute_SouthernHemisphere(t *testing.T) {
	// Jakarta sits south of the equator with Qibla to the northwest and
	// June being its winter; a basic sanity pass on the full composition.
	jakarta := mustCoords(t, -6.2088, 106.8456)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	got, err := Compute(jakarta, date, method.MuslimWorldLeague, method.Shafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrdered(t, got)

	// Equatorial day length stays near 12h year round.
	dayLen := got.Sunset.Sub(got.Sunrise)
	if dayLen < 11*time.Hour || dayLen > 13*time.Hour {
		t.Errorf("Jakarta day length = %v, want ~12h", dayLen)
	}
}
