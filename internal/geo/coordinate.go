// Package geo handles geographic data structures, distance and containment math.
package geo

// Coordinate is a WGS84 position in decimal degrees.
// Range is not validated; out-of-range values propagate into computations.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Kind tags the geometry carried by a placemark.
type Kind int

const (
	KindNone Kind = iota
	KindPoint
	KindPolygon
	KindOther
)

// String returns the geometry name as used in GeoJSON.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindPolygon:
		return "Polygon"
	case KindOther:
		return "Other"
	default:
		return "None"
	}
}
