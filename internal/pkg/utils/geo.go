package utils

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// withinRadiusEpsilon absorbs floating-point error on the fence boundary, so
// a zero radius still accepts a position equal to the fence center.
const withinRadiusEpsilon = 1e-9

// CalculateHaversineDistance returns the great-circle distance between two
// coordinates in meters, on a spherical-Earth approximation.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// IsWithinRadius reports whether the user position lies inside the circular
// fence centered on the target position. The boundary is inclusive.
func IsWithinRadius(userLat, userLng, targetLat, targetLng, radiusMeters float64) bool {
	distance := CalculateHaversineDistance(userLat, userLng, targetLat, targetLng)
	return distance <= radiusMeters+withinRadiusEpsilon
}
