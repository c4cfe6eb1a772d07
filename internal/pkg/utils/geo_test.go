package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance_SamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-6.2, 106.8167},
		{90, 0},
		{-90, 45},
		{51.5074, -0.1278},
	}
	for _, p := range points {
		d := CalculateHaversineDistance(p[0], p[1], p[0], p[1])
		if d != 0 {
			t.Errorf("distance from (%v,%v) to itself = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestCalculateHaversineDistance_Symmetry(t *testing.T) {
	cases := [][4]float64{
		{-6.2, 106.8167, -6.9175, 107.6191}, // Jakarta - Bandung
		{0, 0, 0, 180},
		{90, 0, -90, 0},
		{51.5074, -0.1278, 48.8566, 2.3522},
	}
	for _, c := range cases {
		ab := CalculateHaversineDistance(c[0], c[1], c[2], c[3])
		ba := CalculateHaversineDistance(c[2], c[3], c[0], c[1])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("distance not symmetric: %v vs %v for %v", ab, ba, c)
		}
	}
}

func TestCalculateHaversineDistance_Antipodal(t *testing.T) {
	// Pole to pole is half the Earth's circumference.
	d := CalculateHaversineDistance(90, 0, -90, 0)
	want := math.Pi * earthRadiusMeters
	if math.Abs(d-want) > 1 {
		t.Errorf("pole-to-pole distance = %v, want %v", d, want)
	}
}

func TestCalculateHaversineDistance_KnownDistance(t *testing.T) {
	// One degree of longitude on the equator is roughly 111.19 km.
	d := CalculateHaversineDistance(0, 0, 0, 1)
	if d < 111100 || d > 111300 {
		t.Errorf("one degree at equator = %v m, want ~111195 m", d)
	}
}

func TestIsWithinRadius_SelfIsAlwaysWithin(t *testing.T) {
	radii := []float64{0, 1, 100, 1e7}
	for _, r := range radii {
		if !IsWithinRadius(-6.2, 106.8167, -6.2, 106.8167, r) {
			t.Errorf("point not within radius %v of itself", r)
		}
	}
}

func TestIsWithinRadius_Boundary(t *testing.T) {
	// ~111.19 km between the points; the boundary is inclusive.
	d := CalculateHaversineDistance(0, 0, 0, 1)
	if !IsWithinRadius(0, 0, 0, 1, d) {
		t.Error("point exactly on the boundary should be within")
	}
	if IsWithinRadius(0, 0, 0, 1, d-1) {
		t.Error("point one meter beyond the fence should be outside")
	}
}

func TestIsWithinRadius_OutsideFence(t *testing.T) {
	// ~500 m north of the fence center with a 100 m radius.
	center := [2]float64{-6.2, 106.8167}
	outside := [2]float64{-6.1955, 106.8167}
	if IsWithinRadius(outside[0], outside[1], center[0], center[1], 100) {
		t.Error("position ~500 m away reported within 100 m fence")
	}
	if !IsWithinRadius(outside[0], outside[1], center[0], center[1], 1000) {
		t.Error("position ~500 m away reported outside 1000 m fence")
	}
}
