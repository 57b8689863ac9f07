package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/woozymasta/fieldmap/assets"
	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/geometry"
	"github.com/woozymasta/fieldmap/internal/metrics"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
// Everything in it is read-only once constructed.
type ServerContext struct {
	Registry    *catalog.Registry
	Evaluator   *geometry.Evaluator
	GeoJSON     []byte
	GeoJSONTag  string
	IndexHTML   []byte
	Favicon     []byte
	PreviewSize int
}

// NewServerContext wires the registry into the evaluator and pre-renders
// the GeoJSON export, which cannot change for the process lifetime.
// The export ETag is a content hash so edited data of equal length still
// invalidates client caches across restarts.
func NewServerContext(reg *catalog.Registry, previewSize int) (*ServerContext, error) {
	log.Info().Int("fields", reg.Len()).Msg("Initializing server context")

	gj, err := json.Marshal(catalog.FeatureCollection(reg.All()))
	if err != nil {
		return nil, fmt.Errorf("render geojson: %w", err)
	}

	metrics.SetCatalog(reg.Len(), reg.WithoutCenter())

	if n := reg.WithoutCenter(); n > 0 {
		log.Warn().
			Int("fields_without_center", n).
			Msg("Some fields have no centroid, distance queries for them return not found")
	}

	log.Info().
		Int("geojson_bytes", len(gj)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Registry:    reg,
		Evaluator:   geometry.New(reg),
		GeoJSON:     gj,
		GeoJSONTag:  contentTag(gj),
		IndexHTML:   assets.Index,
		Favicon:     assets.Favicon,
		PreviewSize: previewSize,
	}, nil
}

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/fields", s.HandleFieldsList)
	mux.HandleFunc("GET /api/fields.geojson", s.HandleGeoJSON)
	mux.HandleFunc("GET /api/fields/contains", s.HandleContains)
	mux.HandleFunc("GET /api/fields/{id}/size", s.HandleSize)
	mux.HandleFunc("GET /api/fields/{id}/distance", s.HandleDistance)
	mux.HandleFunc("GET /api/fields/{id}/preview.webp", s.HandlePreview)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /favicon.ico", s.HandleFavicon)
	mux.HandleFunc("GET /{$}", s.HandleIndex)

	return mux
}

func contentTag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}
