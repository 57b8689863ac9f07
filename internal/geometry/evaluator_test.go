package geometry

import (
	"math"
	"sync"
	"testing"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, side float64) []geo.Coordinate {
	return []geo.Coordinate{
		{Latitude: x0, Longitude: y0},
		{Latitude: x0, Longitude: y0 + side},
		{Latitude: x0 + side, Longitude: y0 + side},
		{Latitude: x0 + side, Longitude: y0},
	}
}

func newTestEvaluator() *Evaluator {
	reg := catalog.NewRegistry([]catalog.Field{
		{ID: "big", Name: "Big", Locations: catalog.Location{
			Center:  &geo.Coordinate{Latitude: 0, Longitude: 0},
			Polygon: square(0, 0, 10),
		}},
		{ID: "small", Name: "Small", Locations: catalog.Location{
			Center:  &geo.Coordinate{Latitude: 3, Longitude: 3},
			Polygon: square(2, 2, 2),
		}},
		{ID: "line", Name: "Line", Locations: catalog.Location{
			Polygon: []geo.Coordinate{{20, 20}, {30, 30}},
		}},
		{ID: "nocenter", Name: "No center", Locations: catalog.Location{
			Polygon: square(50, 50, 1),
		}},
	})

	return New(reg)
}

func TestDistanceToPoint(t *testing.T) {
	e := newTestEvaluator()

	d, ok := e.DistanceToPoint("big", 0, 1)
	require.True(t, ok)
	assert.InEpsilon(t, 111195, d, 0.01)

	d, ok = e.DistanceToPoint("big", 0, 0)
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestDistanceToPointAbsent(t *testing.T) {
	e := newTestEvaluator()

	tests := []struct {
		name string
		id   string
		lat  float64
		lng  float64
	}{
		{"unknown field", "missing", 0, 0},
		{"field without center", "nocenter", 50, 50},
		{"non-finite query", "big", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := e.DistanceToPoint(tt.id, tt.lat, tt.lng)
			assert.False(t, ok)
			assert.Zero(t, d)
		})
	}
}

func TestCheckPointInside(t *testing.T) {
	e := newTestEvaluator()

	tests := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{"overlap resolves to earlier field", 3, 3, "big"},
		{"only big contains", 8, 8, "big"},
		{"third field", 50.5, 50.5, "nocenter"},
		{"outside every field", 15, 15, ""},
		{"two-vertex polygon never contains", 25, 25, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := e.CheckPointInside(tt.lat, tt.lng)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, f.ID)
		})
	}
}

func TestCheckPointInsideOrderMatters(t *testing.T) {
	reg := catalog.NewRegistry([]catalog.Field{
		{ID: "small", Locations: catalog.Location{Polygon: square(2, 2, 2)}},
		{ID: "big", Locations: catalog.Location{Polygon: square(0, 0, 10)}},
	})

	f, ok := New(reg).CheckPointInside(3, 3)
	require.True(t, ok)
	assert.Equal(t, "small", f.ID)
}

type panicCatalog struct{}

func (panicCatalog) ByID(string) (catalog.Field, bool) { panic("corrupt catalog") }

func (panicCatalog) Find(func(catalog.Field) bool) (catalog.Field, bool) { panic("corrupt catalog") }

func TestEvaluatorRecovers(t *testing.T) {
	e := New(panicCatalog{})

	assert.NotPanics(t, func() {
		_, ok := e.DistanceToPoint("x", 0, 0)
		assert.False(t, ok)

		_, ok = e.CheckPointInside(0, 0)
		assert.False(t, ok)
	})
}

func TestEvaluatorConcurrentReads(t *testing.T) {
	e := newTestEvaluator()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f, ok := e.CheckPointInside(3, 3)
				assert.True(t, ok)
				assert.Equal(t, "big", f.ID)

				_, ok = e.DistanceToPoint("small", 3, 4)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}
