package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingClosesOpenBoundary(t *testing.T) {
	ring := Ring([]Coordinate{{0, 0}, {0, 10}, {10, 10}})

	require.Len(t, ring, 4)
	assert.True(t, ring.Closed())
	assert.Equal(t, orb.Point{10, 0}, ring[1], "points are lon/lat")
}

func TestRingKeepsClosedBoundary(t *testing.T) {
	ring := Ring([]Coordinate{{0, 0}, {0, 10}, {10, 10}, {0, 0}})
	assert.Len(t, ring, 4)
}

func TestRingEmpty(t *testing.T) {
	assert.Empty(t, Ring(nil))
}

func TestPolygonFeature(t *testing.T) {
	f := PolygonFeature([]Coordinate{{1, 2}, {3, 4}, {5, 6}}, map[string]any{"id": "7"})

	poly, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 4)
	assert.Equal(t, "7", f.Properties["id"])
}

func TestPointFeature(t *testing.T) {
	f := PointFeature(Coordinate{Latitude: 45, Longitude: 39}, map[string]any{"id": "1"})

	assert.Equal(t, orb.Point{39, 45}, f.Geometry)
	assert.Equal(t, "1", f.Properties["id"])
}
