// Package estimate turns a triangle mesh into a print time estimate and a
// billed cost.
//
// The time estimate is a heuristic: every triangle's area is spread evenly
// over the print layers it spans, scaled by the infill fraction, and the
// total is multiplied by an empirically calibrated minutes-per-area constant.
package estimate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/philipparndt/printplate/pkg/geometry"
)

// ErrInvalidSettings is returned by Settings.Validate
var ErrInvalidSettings = errors.New("invalid estimator settings")

const (
	// MaxLayers caps LayerCount; taller parts are estimated as this many layers
	MaxLayers = 10_000_000
	// MaxProfileLayers is the largest estimate that keeps a per-layer profile
	MaxProfileLayers = 100_000
)

// Settings holds the estimator constants
type Settings struct {
	LayerHeight float64 // mm per layer, > 0
	Infill      float64 // fraction in (0, 1]
	TimePerArea float64 // minutes per mm² of infilled area
}

// DefaultSettings returns the default printer calibration
func DefaultSettings() Settings {
	return Settings{
		LayerHeight: 0.2,
		Infill:      0.15,
		TimePerArea: 0.055,
	}
}

// Validate checks that the settings describe a usable estimator
func (s Settings) Validate() error {
	if s.LayerHeight <= 0 {
		return fmt.Errorf("%w: layer height must be > 0, got %v", ErrInvalidSettings, s.LayerHeight)
	}
	if s.Infill <= 0 || s.Infill > 1 {
		return fmt.Errorf("%w: infill must be in (0, 1], got %v", ErrInvalidSettings, s.Infill)
	}
	if s.TimePerArea < 0 {
		return fmt.Errorf("%w: time per area must be >= 0, got %v", ErrInvalidSettings, s.TimePerArea)
	}
	return nil
}

// Result holds the outcome of an estimate
type Result struct {
	Layers         int       // number of print layers
	CumulativeArea float64   // infilled area summed over all layers, mm²
	Minutes        int       // estimated print time
	LayerArea      []float64 // infilled area per layer, nil above MaxProfileLayers
}

// Duration returns the estimated print time as a time.Duration
func (r Result) Duration() time.Duration {
	return time.Duration(r.Minutes) * time.Minute
}

// LayerCount returns the number of layers needed for a part of the given
// height. The height is rounded to two decimals first. Non-positive or NaN
// heights need no layers; the count is capped at MaxLayers.
func (s Settings) LayerCount(height float64) int {
	n := math.Ceil(round2(height) / s.LayerHeight)
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n > MaxLayers {
		return MaxLayers
	}
	return int(n)
}

// Estimate computes the print estimate for a triangle list, deriving the
// height from the vertical extent of its vertices.
func (s Settings) Estimate(triangles []geometry.Triangle) Result {
	minZ, maxZ, ok := zRange(triangles)
	if !ok {
		return Result{}
	}
	return s.estimate(triangles, minZ, s.LayerCount(maxZ-minZ))
}

// EstimateForHeight computes the print estimate using a height supplied by
// the caller, such as the scaled dimensions shown for a model. Layers are
// still measured from the lowest vertex.
func (s Settings) EstimateForHeight(triangles []geometry.Triangle, height float64) Result {
	minZ, _, _ := zRange(triangles)
	return s.estimate(triangles, minZ, s.LayerCount(height))
}

func (s Settings) estimate(triangles []geometry.Triangle, minZ float64, layers int) Result {
	result := Result{Layers: layers}
	if layers <= MaxProfileLayers {
		result.LayerArea = make([]float64, layers)
	}

	last := float64(layers - 1)
	for _, t := range triangles {
		zMin, zMax := t.ZRange()
		start := math.Floor((zMin - minZ) / s.LayerHeight)
		end := math.Floor((zMax - minZ) / s.LayerHeight)
		span := end - start + 1

		// only layers inside [0, layers) receive area
		first, final := math.Max(start, 0), math.Min(end, last)
		if !(first <= final) {
			continue
		}

		area := t.Area()
		if math.IsNaN(area) || math.IsInf(area, 0) {
			continue
		}
		share := area / span * s.Infill
		result.CumulativeArea += share * (final - first + 1)
		if result.LayerArea != nil {
			for layer := int(first); layer <= int(final); layer++ {
				result.LayerArea[layer] += share
			}
		}
	}

	result.Minutes = int(math.Floor(result.CumulativeArea * s.TimePerArea))
	return result
}

// zRange returns the vertical extent of the finite triangles
func zRange(triangles []geometry.Triangle) (float64, float64, bool) {
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	found := false
	for _, t := range triangles {
		lo, hi := t.ZRange()
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			continue
		}
		minZ = math.Min(minZ, lo)
		maxZ = math.Max(maxZ, hi)
		found = true
	}
	if !found {
		return 0, 0, false
	}
	return minZ, maxZ, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
