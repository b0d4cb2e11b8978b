package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{name: "identical points", a: Point{Lat: 46.35, Lng: 48.04}, b: Point{Lat: 46.35, Lng: 48.04}, want: 0},
		{name: "one degree of latitude", a: Point{Lat: 0, Lng: 0}, b: Point{Lat: 1, Lng: 0}, want: 111.19492664455873},
		{name: "one degree of longitude at equator", a: Point{Lat: 0, Lng: 0}, b: Point{Lat: 0, Lng: 1}, want: 111.19492664455873},
		{name: "antipodal", a: Point{Lat: 0, Lng: 0}, b: Point{Lat: 0, Lng: 180}, want: 20015.086796020572},
		{name: "paris to london", a: Point{Lat: 48.8566, Lng: 2.3522}, b: Point{Lat: 51.5074, Lng: -0.1278}, want: 343.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Point{Lat: 46.3497, Lng: 48.0408}
	b := Point{Lat: 46.3612, Lng: 48.0999}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-12)
	assert.Greater(t, Haversine(a, b), 0.0)
}

func TestHaversineNearAntipodesIsFinite(t *testing.T) {
	got := Haversine(Point{Lat: -86.78, Lng: -179}, Point{Lat: 86.78, Lng: 1})
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, math.Pi*EarthRadiusKm, got, 0.5)

	for lat := -89.0; lat <= 89; lat += 0.37 {
		for lng := -180.0; lng < 0; lng += 1.3 {
			a := Point{Lat: lat, Lng: lng}
			b := Point{Lat: -lat, Lng: lng + 180}
			d := Haversine(a, b)
			if math.IsNaN(d) || d > math.Pi*EarthRadiusKm+1e-9 {
				t.Fatalf("haversine(%v, %v) = %v", a, b, d)
			}
		}
	}
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 90, Lng: -180}.Valid())
	assert.False(t, Point{Lat: 90.1, Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: 181}.Valid())
}
