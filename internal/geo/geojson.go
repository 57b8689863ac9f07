package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Point converts the coordinate to an orb point in [lon, lat] order.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Ring converts a boundary to an orb ring, closing it when the source ring is open.
func Ring(coords []Coordinate) orb.Ring {
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, c.Point())
	}

	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return ring
}

// PolygonFeature builds a GeoJSON Polygon feature from a boundary ring.
func PolygonFeature(coords []Coordinate, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{Ring(coords)})
	for k, v := range props {
		f.Properties[k] = v
	}

	return f
}

// PointFeature builds a GeoJSON Point feature.
func PointFeature(c Coordinate, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(c.Point())
	for k, v := range props {
		f.Properties[k] = v
	}

	return f
}
