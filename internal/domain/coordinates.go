package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Immutable geographic coordinates (latitude, longitude) in WGS-84 degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinates are finite and within WGS-84 degree ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsZero reports whether c is the (0,0) sentinel left behind by a failed geocode.
func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lon == 0 }

func (c Coordinates) LatLng() s2.LatLng { return s2.LatLngFromDegrees(c.Lat, c.Lon) }

// String renders "<lat>,<lng>" as navigation deep-links expect it.
func (c Coordinates) String() string {
	return FormatDegrees(c.Lat) + "," + FormatDegrees(c.Lon)
}

// FormatDegrees renders a float the way the mobile client always has (JVM
// Double.toString): shortest round-trip digits with at least one fractional
// digit, and computerized scientific notation outside [1e-3, 1e7).
func FormatDegrees(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-3 || abs >= 1e7) {
		// 'E' yields e.g. "1E-04" or "-1.25E+07".
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'E', -1, 64), "E")
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		n, _ := strconv.Atoi(exp)
		return mant + "E" + strconv.Itoa(n)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
