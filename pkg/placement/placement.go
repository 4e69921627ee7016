// Package placement keeps models inside the build volume footprint.
package placement

import (
	"math"

	"github.com/philipparndt/printplate/pkg/geometry"
)

// Clamp limits candidate so that an object extending halfExtent on either
// side stays inside [-buildHalf, buildHalf]. When the object is wider than
// the build volume the range is empty and the object is pinned to 0.
func Clamp(candidate, halfExtent, buildHalf float64) float64 {
	lo := -buildHalf + halfExtent
	hi := buildHalf - halfExtent
	if lo > hi {
		return 0
	}
	return math.Max(lo, math.Min(hi, candidate))
}

// Policy clamps horizontal positions to a square build plate centred on the
// origin.
type Policy struct {
	BuildVolume float64 // edge length of the build cube in mm
}

// NewPolicy creates a policy for a build cube of the given edge length
func NewPolicy(buildVolume float64) Policy {
	return Policy{BuildVolume: buildVolume}
}

// Clamp returns the closest position to (x, y) that keeps a footprint of
// the given half extents on the plate. Each axis is clamped independently.
func (p Policy) Clamp(x, y, halfLength, halfWidth float64) (float64, float64) {
	half := p.BuildVolume / 2
	return Clamp(x, halfLength, half), Clamp(y, halfWidth, half)
}

// ClampExtents clamps a position for a model of the given full extents
func (p Policy) ClampExtents(x, y float64, extents geometry.Extents) (float64, float64) {
	half := extents.Half()
	return p.Clamp(x, y, half.Length, half.Width)
}

// Fits reports, per axis, whether the extents fit inside the build volume
func (p Policy) Fits(extents geometry.Extents) [3]bool {
	return [3]bool{
		extents.Length <= p.BuildVolume,
		extents.Width <= p.BuildVolume,
		extents.Height <= p.BuildVolume,
	}
}
