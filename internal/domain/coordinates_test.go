package domain

import (
	"math"
	"testing"
)

func TestFormatDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-89, "-89.0"},
		{43.0731, "43.0731"},
		{-89.401230, "-89.40123"},
		{0.1, "0.1"},
		{0.001, "0.001"},
		{0.0001, "1.0E-4"},
		{-0.00015, "-1.5E-4"},
		{1e7, "1.0E7"},
		{12345678.5, "1.23456785E7"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tc := range tests {
		if got := FormatDegrees(tc.in); got != tc.want {
			t.Errorf("FormatDegrees(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoordinatesString(t *testing.T) {
	c := Coordinates{Lat: 43.0731, Lon: -89.4012}
	if got := c.String(); got != "43.0731,-89.4012" {
		t.Fatalf("String() = %q", got)
	}
}

func TestCoordinatesValid(t *testing.T) {
	valid := []Coordinates{{0, 0}, {90, 180}, {-90, -180}, {43.07, -89.4}}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("%v should be valid", c)
		}
	}

	invalid := []Coordinates{{90.0001, 0}, {0, -180.5}, {math.NaN(), 0}, {0, math.Inf(1)}}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("%v should be invalid", c)
		}
	}
}

func TestSaleGeocodedAndFullAddress(t *testing.T) {
	s := Sale{Address: "123 Oak St", City: "Verona"}
	if s.Geocoded() {
		t.Fatalf("zero coordinates must count as not geocoded")
	}
	if got := s.FullAddress(); got != "123 Oak St, Verona" {
		t.Fatalf("FullAddress() = %q", got)
	}

	s.Coordinates = Coordinates{Lat: 42.99, Lon: -89.53}
	if !s.Geocoded() {
		t.Fatalf("sale with coordinates should be geocoded")
	}
}
