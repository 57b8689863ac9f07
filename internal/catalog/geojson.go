package catalog

import (
	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports fields as GeoJSON: one Polygon feature per field
// followed by one Point feature per field centroid.
func FeatureCollection(fields []Field) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, f := range fields {
		fc.Append(geo.PolygonFeature(f.Locations.Polygon, map[string]any{
			"id":   f.ID,
			"name": f.Name,
			"size": f.Size,
		}))
	}

	for _, f := range fields {
		if f.Locations.Center == nil {
			continue
		}
		fc.Append(geo.PointFeature(*f.Locations.Center, map[string]any{
			"id":   f.ID,
			"name": f.Name,
			"kind": "centroid",
		}))
	}

	return fc
}
