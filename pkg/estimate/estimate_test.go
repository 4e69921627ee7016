package estimate

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

// cubeCaps returns the top and bottom faces of an axis-aligned cube of the
// given edge, two triangles each.
func cubeCaps(edge float64) []geometry.Triangle {
	return []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(edge, 0, 0), v(edge, edge, 0)),
		geometry.NewTriangle(v(0, 0, 0), v(edge, edge, 0), v(0, edge, 0)),
		geometry.NewTriangle(v(0, 0, edge), v(edge, 0, edge), v(edge, edge, edge)),
		geometry.NewTriangle(v(0, 0, edge), v(edge, edge, edge), v(0, edge, edge)),
	}
}

func TestLayerCount(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 50, s.LayerCount(10))
	assert.Equal(t, 1, s.LayerCount(0.2))
	assert.Equal(t, 2, s.LayerCount(0.21))
	// 0.204 rounds to 0.20 before dividing
	assert.Equal(t, 1, s.LayerCount(0.204))
	assert.Equal(t, 0, s.LayerCount(0))
}

func TestLayerCountOutOfRange(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 0, s.LayerCount(math.NaN()))
	assert.Equal(t, 0, s.LayerCount(math.Inf(-1)))
	assert.Equal(t, MaxLayers, s.LayerCount(math.Inf(1)))
	assert.Equal(t, MaxLayers, s.LayerCount(1e9))
}

func TestEstimateTallPartStaysBounded(t *testing.T) {
	s := DefaultSettings()
	tris := []geometry.Triangle{
		// a stray vertex a kilometre up
		geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 0, 1e9)),
	}

	result := s.Estimate(tris)
	assert.Equal(t, MaxLayers, result.Layers)
	assert.Nil(t, result.LayerArea)
	// area 5e8 spread over 5e9 layers, of which MaxLayers are counted
	assert.InEpsilon(t, 5e8*0.15*MaxLayers/5e9, result.CumulativeArea, 1e-6)
}

func TestEstimateSkipsNonFiniteTriangles(t *testing.T) {
	s := DefaultSettings()
	tris := append(cubeCaps(10), geometry.NewTriangle(v(0, 0, 0), v(1, 0, math.NaN()), v(0, 1, 0)))

	result := s.EstimateForHeight(tris, 10)
	assert.Equal(t, 50, result.Layers)
	assert.InDelta(t, 100*0.15, result.CumulativeArea, 1e-9)
}

func TestEstimateEmptyMesh(t *testing.T) {
	result := DefaultSettings().Estimate(nil)

	assert.Equal(t, 0, result.Minutes)
	assert.Equal(t, 0.0, result.CumulativeArea)
	assert.Equal(t, 0, result.Layers)
}

func TestEstimateFlatTriangleSingleLayer(t *testing.T) {
	for _, layerHeight := range []float64{0.1, 0.2, 0.3, 1.5} {
		s := Settings{LayerHeight: layerHeight, Infill: 1, TimePerArea: 1}
		tris := []geometry.Triangle{
			geometry.NewTriangle(v(0, 0, 0), v(4, 0, 0), v(0, 5, 0)),
		}

		// A flat mesh has no height, so supply one layer explicitly.
		result := s.EstimateForHeight(tris, layerHeight)
		require.Equal(t, 1, result.Layers)
		assert.InDelta(t, 10.0, result.LayerArea[0], 1e-9, "layer height %v", layerHeight)
		assert.InDelta(t, 10.0, result.CumulativeArea, 1e-9)
		assert.Equal(t, 10, result.Minutes)
	}
}

func TestEstimateDistributesAcrossSpannedLayers(t *testing.T) {
	s := Settings{LayerHeight: 1, Infill: 0.5, TimePerArea: 1}
	tris := []geometry.Triangle{
		// vertical triangle from z=0 to z=2.5, area 2.5*4/2 = 5
		geometry.NewTriangle(v(0, 0, 0), v(4, 0, 0), v(0, 0, 2.5)),
	}

	result := s.Estimate(tris)
	require.Equal(t, 3, result.Layers)
	for i, area := range result.LayerArea {
		assert.InDelta(t, 5.0*0.5/3, area, 1e-12, "layer %d", i)
	}
	assert.InDelta(t, 2.5, result.CumulativeArea, 1e-12)
	assert.Equal(t, 2, result.Minutes)
}

func TestEstimateDropsLayersOutsideRange(t *testing.T) {
	s := Settings{LayerHeight: 1, Infill: 1, TimePerArea: 1}
	tris := []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(2, 0, 0), v(0, 0, 4)),
	}

	// Only two of the five spanned layers fall inside the supplied height.
	result := s.EstimateForHeight(tris, 2)
	require.Equal(t, 2, result.Layers)
	assert.InDelta(t, 4.0/5*2, result.CumulativeArea, 1e-12)
}

func TestEstimateCube(t *testing.T) {
	s := DefaultSettings()
	result := s.Estimate(cubeCaps(10))

	assert.Equal(t, 50, result.Layers)
	// Bottom cap lands in layer 0; the top cap at z=10 is layer 50, outside the range.
	assert.InDelta(t, 100*0.15, result.CumulativeArea, 1e-9)
	assert.InDelta(t, 100*0.15, result.LayerArea[0], 1e-9)
	assert.Equal(t, 0, result.Minutes)
	assert.GreaterOrEqual(t, result.Minutes, 0)
}

func TestEstimateLargeAreaMinutes(t *testing.T) {
	s := DefaultSettings()
	result := s.Estimate(cubeCaps(100))

	// floor(10000 * 0.15 * 0.055) = floor(82.5)
	assert.Equal(t, 82, result.Minutes)
	assert.Equal(t, 82*time.Minute, result.Duration())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	bad := []Settings{
		{LayerHeight: 0, Infill: 0.5, TimePerArea: 1},
		{LayerHeight: 0.2, Infill: 0, TimePerArea: 1},
		{LayerHeight: 0.2, Infill: 1.5, TimePerArea: 1},
		{LayerHeight: 0.2, Infill: 0.5, TimePerArea: -1},
	}
	for _, s := range bad {
		err := s.Validate()
		assert.True(t, errors.Is(err, ErrInvalidSettings), "settings %+v", s)
	}
}
