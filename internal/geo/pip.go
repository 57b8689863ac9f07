package geo

// edgeEpsilon keeps the crossing division finite on horizontal edges.
// Points on such edges resolve either way.
const edgeEpsilon = 1e-10

// PointInPolygon reports whether pt lies inside the ring using even-odd ray casting.
//
// Latitude is the ray-cast x and Longitude the y, for both the ring and pt.
// The ring may be open (first vertex != last); the closing edge is implied by
// wrapping j to the last vertex. Rings with fewer than 3 vertices contain nothing.
// Points exactly on an edge or vertex may resolve either way.
func PointInPolygon(pt Coordinate, ring []Coordinate) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	x, y := pt.Latitude, pt.Longitude
	inside := false

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Latitude, ring[i].Longitude
		xj, yj := ring[j].Latitude, ring[j].Longitude

		crosses := (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/((yj-yi)+edgeEpsilon)+xi
		if crosses {
			inside = !inside
		}
	}

	return inside
}
