package geo

import "math"

// EarthRadius is the mean Earth radius in meters used for great-circle distances.
const EarthRadius = 6371000.0

// Haversine returns the great-circle distance in meters between two points
// on a spherical Earth of radius EarthRadius.
func Haversine(from, to Coordinate) float64 {
	dLat := DegreesToRadians(to.Latitude - from.Latitude)
	dLng := DegreesToRadians(to.Longitude - from.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	a := sinLat*sinLat +
		math.Cos(DegreesToRadians(from.Latitude))*math.Cos(DegreesToRadians(to.Latitude))*sinLng*sinLng

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadius * c
}

// DegreesToRadians converts an angle from degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
