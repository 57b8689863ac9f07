package processor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/fieldmap/internal/catalog"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatGeoJSON = "geojson"
)

// Marshal encodes fields in the requested format. JSON and YAML carry the
// catalog records as served by the API; GeoJSON carries polygons and centroids.
func Marshal(fields []catalog.Field, format string) ([]byte, error) {
	if fields == nil {
		fields = []catalog.Field{}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(fields, "", "  ")
	case FormatYAML:
		return yaml.Marshal(fields)
	case FormatGeoJSON:
		return json.MarshalIndent(catalog.FeatureCollection(fields), "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// SaveExport writes fields in format to path. An existing file is kept unless force is set.
func SaveExport(fields []catalog.Field, format, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		log.Debug().Str("path", path).Msg("Export file exists, skipping")
		return nil
	}

	data, err := Marshal(fields, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	_, err = f.Write(data)
	return err
}
