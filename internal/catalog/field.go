// Package catalog loads agricultural field boundaries and centroids and
// holds them in an immutable in-memory registry.
package catalog

import (
	"slices"

	"github.com/woozymasta/fieldmap/internal/geo"
)

// Field is a single agricultural field.
type Field struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Size      float64  `json:"size" yaml:"size"`
	Locations Location `json:"locations" yaml:"locations"`
}

// Location holds the field centroid and boundary ring.
// Center is nil when no centroid shares the field identifier.
// Polygon keeps source order and is not guaranteed to be closed.
type Location struct {
	Center  *geo.Coordinate  `json:"center" yaml:"center,omitempty"`
	Polygon []geo.Coordinate `json:"polygon" yaml:"polygon"`
}

// clone returns a copy of f that shares no memory with it.
func (f Field) clone() Field {
	f.Locations.Polygon = slices.Clone(f.Locations.Polygon)
	if f.Locations.Center != nil {
		center := *f.Locations.Center
		f.Locations.Center = &center
	}

	return f
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}

	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.clone()
	}

	return out
}
