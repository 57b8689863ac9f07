// Package geometry answers distance and containment queries over the field catalog.
package geometry

import (
	"math"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/rs/zerolog/log"
)

// Catalog is the read side of the field registry used by the Evaluator.
type Catalog interface {
	ByID(id string) (catalog.Field, bool)
	Find(match func(catalog.Field) bool) (catalog.Field, bool)
}

// Evaluator is stateless; it only reads the catalog and is safe for concurrent use.
type Evaluator struct {
	catalog Catalog
}

// New returns an Evaluator over c.
func New(c Catalog) *Evaluator {
	return &Evaluator{catalog: c}
}

// DistanceToPoint returns the haversine distance in meters from the field
// center to the query point. It reports false when the field is unknown,
// has no center, or the computation fails.
func (e *Evaluator) DistanceToPoint(fieldID string, lat, lng float64) (distance float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("field", fieldID).Msg("Distance evaluation failed")
			distance, ok = 0, false
		}
	}()

	field, found := e.catalog.ByID(fieldID)
	if !found || field.Locations.Center == nil {
		return 0, false
	}

	d := geo.Haversine(*field.Locations.Center, geo.Coordinate{Latitude: lat, Longitude: lng})
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}

	return d, true
}

// CheckPointInside returns the first field, in catalog order, whose boundary
// contains the point. Overlapping fields resolve to the earlier one.
func (e *Evaluator) CheckPointInside(lat, lng float64) (field catalog.Field, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Float64("lat", lat).Float64("lng", lng).Msg("Containment evaluation failed")
			field, ok = catalog.Field{}, false
		}
	}()

	pt := geo.Coordinate{Latitude: lat, Longitude: lng}

	return e.catalog.Find(func(f catalog.Field) bool {
		return geo.PointInPolygon(pt, f.Locations.Polygon)
	})
}
