package catalog

import (
	"errors"
	"fmt"

	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/rs/zerolog/log"
)

const (
	attrID   = "fid"
	attrSize = "size"
)

// Loader builds the field catalog from a polygon source and a centroid source.
type Loader struct {
	Reader        Reader
	FieldsPath    string
	CentroidsPath string
}

// NewLoader returns a Loader reading both sources as KML.
func NewLoader(fieldsPath, centroidsPath string) *Loader {
	return &Loader{
		Reader:        KMLReader{},
		FieldsPath:    fieldsPath,
		CentroidsPath: centroidsPath,
	}
}

// Load parses both sources and merges centroids into fields by identifier.
//
// Only an unreadable source file is returned as an error. Malformed documents
// are logged and contribute nothing; malformed placemarks are skipped.
func (l *Loader) Load() ([]Field, error) {
	fields, err := l.parseFields()
	if err != nil {
		return nil, fmt.Errorf("load fields from %s: %w", l.FieldsPath, err)
	}

	centroids, err := l.parseCentroids()
	if err != nil {
		return nil, fmt.Errorf("load centroids from %s: %w", l.CentroidsPath, err)
	}

	missing := 0
	for i := range fields {
		if c, ok := centroids[fields[i].ID]; ok {
			center := c
			fields[i].Locations.Center = &center
		} else {
			missing++
		}
	}

	log.Info().
		Int("fields", len(fields)).
		Int("centroids", len(centroids)).
		Int("without_center", missing).
		Msg("Field catalog loaded")

	return fields, nil
}

// parseFields reads polygon placemarks in source order.
func (l *Loader) parseFields() ([]Field, error) {
	placemarks, err := l.Reader.Read(l.FieldsPath)
	if errors.Is(err, ErrSourceUnreadable) {
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Str("path", l.FieldsPath).Msg("Failed to parse field polygons, continuing without fields")
		return nil, nil
	}

	fields := make([]Field, 0, len(placemarks))
	for _, pm := range placemarks {
		if pm.Kind() != geo.KindPolygon {
			continue
		}

		ring, err := pm.Ring()
		if err != nil {
			log.Debug().Err(err).Str("name", pm.Title()).Msg("Skipping field with malformed boundary")
			continue
		}

		id, _ := pm.Attribute(attrID)
		size, _ := pm.Attribute(attrSize)

		fields = append(fields, Field{
			ID:   id,
			Name: pm.Title(),
			Size: ParseSize(size),
			Locations: Location{
				Polygon: ring,
			},
		})
	}

	return fields, nil
}

// parseCentroids reads point placemarks into an identifier map; the last duplicate wins.
func (l *Loader) parseCentroids() (map[string]geo.Coordinate, error) {
	centroids := make(map[string]geo.Coordinate)

	placemarks, err := l.Reader.Read(l.CentroidsPath)
	if errors.Is(err, ErrSourceUnreadable) {
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Str("path", l.CentroidsPath).Msg("Failed to parse centroids, continuing without centers")
		return centroids, nil
	}

	for _, pm := range placemarks {
		if pm.Kind() != geo.KindPoint {
			continue
		}

		c, err := pm.Position()
		if err != nil {
			log.Debug().Err(err).Str("name", pm.Title()).Msg("Skipping centroid with malformed point")
			continue
		}

		id, _ := pm.Attribute(attrID)
		centroids[id] = c
	}

	return centroids, nil
}
