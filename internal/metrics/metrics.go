// Package metrics exposes Prometheus metrics for field queries.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldmap_queries_total",
		Help: "Total number of field queries by operation and result",
	}, []string{"op", "result"})
	QueryDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fieldmap_query_duration_ms",
		Help:    "Field query duration in milliseconds",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	}, []string{"op"})
	CatalogFields = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fieldmap_catalog_fields",
		Help: "Number of fields in the loaded catalog",
	})
	CatalogWithoutCenter = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fieldmap_catalog_fields_without_center",
		Help: "Number of fields without a matching centroid",
	})
)

func init() {
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDurationMs)
	prometheus.MustRegister(CatalogFields)
	prometheus.MustRegister(CatalogWithoutCenter)
}

// Observe records one query outcome.
func Observe(op string, found bool, start time.Time) {
	result := "found"
	if !found {
		result = "not_found"
	}

	QueriesTotal.WithLabelValues(op, result).Inc()
	QueryDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000)
}

// SetCatalog records catalog gauges after load.
func SetCatalog(fields, withoutCenter int) {
	CatalogFields.Set(float64(fields))
	CatalogWithoutCenter.Set(float64(withoutCenter))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler { return promhttp.Handler() }
