// Package geo holds the validated coordinate value type and the great-circle
// qibla bearing calculation. Location acquisition (GPS, IP lookup) is
// deliberately outside this package: coordinates arrive from config or flags.
package geo

import (
	"fmt"
	"math"
)

// Kaaba is the fixed reference point every qibla bearing targets.
const (
	kaabaLatitude  = 21.4225
	kaabaLongitude = 39.8262
)

// Coordinates is an immutable geographic point (WGS 84).
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// New validates and builds a Coordinates value. Latitude must be in
// [-90, 90], longitude in [-180, 180], and both finite.
func New(latitude, longitude float64) (Coordinates, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return Coordinates{}, fmt.Errorf("latitude must be finite, got %v", latitude)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Coordinates{}, fmt.Errorf("longitude must be finite, got %v", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v out of range [-180, 180]", longitude)
	}
	return Coordinates{Latitude: latitude, Longitude: longitude}, nil
}

// String formats the point as "lat, lon" with four decimals, matching the
// precision the cache keys coordinates at.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// QiblaBearing returns the initial great-circle bearing from the observer to
// the Kaaba, in degrees clockwise from true north, normalized into [0, 360).
//
// An observer standing at the Kaaba itself (or at its antipode) gets a
// mathematically valid but directionally meaningless bearing; that is the
// only degenerate case and it does not error.
func QiblaBearing(c Coordinates) float64 {
	lat1 := deg2Rad(c.Latitude)
	lat2 := deg2Rad(kaabaLatitude)
	dLon := deg2Rad(kaabaLongitude - c.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := rad2Deg(math.Atan2(y, x))
	return math.Mod(bearing+360, 360)
}

// compassPoints are the 16-wind rose labels, clockwise from north.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint maps a bearing in degrees to its 16-wind compass label.
func CompassPoint(bearing float64) string {
	idx := int(math.Mod(bearing+11.25, 360) / 22.5)
	return compassPoints[idx]
}

func deg2Rad(d float64) float64 { return d * math.Pi / 180 }
func rad2Deg(r float64) float64 { return r * 180 / math.Pi }
