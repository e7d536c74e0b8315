package geo

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{"valid", 40.7128, -74.0060, false},
		{"boundary north pole", 90, 0, false},
		{"boundary date line", 0, -180, false},
		{"latitude too high", 90.01, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
		{"NaN latitude", math.NaN(), 0, true},
		{"infinite longitude", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.lat, tt.lon)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%v, %v) expected error, got nil", tt.lat, tt.lon)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v, %v) unexpected error: %v", tt.lat, tt.lon, err)
			}
			if got.Latitude != tt.lat || got.Longitude != tt.lon {
				t.Errorf("New(%v, %v) = %v", tt.lat, tt.lon, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// QiblaBearing
// ---------------------------------------------------------------------------

func TestQiblaBearing_KnownCities(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     float64 // degrees from true north
		tol      float64
	}{
		// Reference bearings from standard great-circle calculators.
		{"New York", 40.7128, -74.0060, 58.5, 1.0},
		{"London", 51.5074, -0.1278, 118.99, 1.0},
		{"Jakarta", -6.2088, 106.8456, 295.15, 1.0},
		{"Cairo", 30.0444, 31.2357, 136.1, 1.0},
		{"due south of Makkah", 0, 39.8262, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Coordinates{Latitude: tt.lat, Longitude: tt.lon}
			got := QiblaBearing(c)
			diff := math.Abs(got - tt.want)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff > tt.tol {
				t.Errorf("QiblaBearing(%v) = %.2f, want %.2f +- %.1f", c, got, tt.want, tt.tol)
			}
		})
	}
}

func TestQiblaBearing_NearKaaba(t *testing.T) {
	// Jeddah-side observer essentially at the destination: the bearing is
	// degenerate but must be a normal number, not a panic or NaN.
	c := Coordinates{Latitude: 21.3891, Longitude: 39.8579}
	got := QiblaBearing(c)
	if math.IsNaN(got) {
		t.Fatal("bearing is NaN at near-Kaaba coordinates")
	}
	if got < 0 || got >= 360 {
		t.Errorf("bearing %v outside [0, 360)", got)
	}
}

func TestQiblaBearing_AtKaabaDoesNotPanic(t *testing.T) {
	c := Coordinates{Latitude: 21.4225, Longitude: 39.8262}
	got := QiblaBearing(c)
	if math.IsNaN(got) || got < 0 || got >= 360 {
		t.Errorf("degenerate self-bearing should still normalize, got %v", got)
	}
}

func TestQiblaBearing_Range(t *testing.T) {
	for lat := -80.0; lat <= 80; lat += 20 {
		for lon := -180.0; lon < 180; lon += 30 {
			got := QiblaBearing(Coordinates{Latitude: lat, Longitude: lon})
			if got < 0 || got >= 360 {
				t.Errorf("QiblaBearing(%v, %v) = %v outside [0, 360)", lat, lon, got)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// CompassPoint
// ---------------------------------------------------------------------------

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{11.24, "N"},
		{11.3, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{340, "NNW"},
		{359.9, "N"},
	}
	for _, tt := range tests {
		if got := CompassPoint(tt.bearing); got != tt.want {
			t.Errorf("CompassPoint(%v) = %q, want %q", tt.bearing, got, tt.want)
		}
	}
}
