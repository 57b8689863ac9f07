// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/metrics"
	"github.com/woozymasta/fieldmap/internal/render"

	"github.com/rs/zerolog/log"
)

var errBadCoordinate = errors.New("lat and lng query parameters must be decimal numbers")

// membership is the body returned when a point lies inside a field.
type membership struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleFieldsList serves the full field catalog.
func (s *ServerContext) HandleFieldsList(w http.ResponseWriter, r *http.Request) {
	fields := s.Registry.All()
	if fields == nil {
		fields = []catalog.Field{}
	}

	writeJSON(w, fields)
}

// HandleSize serves the size attribute of one field.
func (s *ServerContext) HandleSize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	size, ok := s.Registry.Size(r.PathValue("id"))
	metrics.Observe("size", ok, start)
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, size)
}

// HandleDistance serves the distance in meters from a field center to a point.
func (s *ServerContext) HandleDistance(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := queryCoordinate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	distance, ok := s.Evaluator.DistanceToPoint(r.PathValue("id"), lat, lng)
	metrics.Observe("distance", ok, start)
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, distance)
}

// HandleContains serves the first field containing a point, or false.
func (s *ServerContext) HandleContains(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := queryCoordinate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	field, ok := s.Evaluator.CheckPointInside(lat, lng)
	metrics.Observe("contains", ok, start)
	if !ok {
		writeJSON(w, false)
		return
	}

	writeJSON(w, membership{ID: field.ID, Name: field.Name})
}

// HandleGeoJSON serves the catalog as a GeoJSON FeatureCollection.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	etag := s.GeoJSONTag
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.GeoJSON)
}

// HandlePreview serves a WebP raster of the field boundary.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	field, ok := s.Registry.ByID(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	size := s.PreviewSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "size must be an integer", http.StatusBadRequest)
			return
		}
		size = v
	}

	img, err := render.FieldPreview(field.Locations.Polygon, size)
	if errors.Is(err, render.ErrDegenerate) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("field", field.ID).Msg("Failed to render preview")
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := render.EncodeWebP(&buf, img); err != nil {
		log.Error().Err(err).Str("field", field.ID).Msg("Failed to encode preview")
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf.Bytes())
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// queryCoordinate parses the lat and lng query parameters.
func queryCoordinate(r *http.Request) (lat, lng float64, err error) {
	q := r.URL.Query()

	lat, err = strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return 0, 0, errBadCoordinate
	}
	lng, err = strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return 0, 0, errBadCoordinate
	}

	return lat, lng, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}
