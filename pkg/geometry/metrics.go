package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMesh is returned when a geometry has no vertices to measure.
	ErrEmptyMesh = errors.New("mesh has no vertices")
	// ErrNonFinite is returned for NaN or infinite coordinates
	ErrNonFinite = errors.New("non-finite coordinate")
)

// BoundingBoxSize returns the length, width and height spanned by the given
// vertex positions. Non-finite vertices yield ErrNonFinite.
func BoundingBoxSize(vertices []Vector3) (Extents, error) {
	if len(vertices) == 0 {
		return Extents{}, ErrEmptyMesh
	}

	bbox := NewBoundingBox()
	for _, v := range vertices {
		if !v.IsFinite() {
			return Extents{}, fmt.Errorf("%w: %v", ErrNonFinite, v)
		}
		bbox.Extend(v)
	}
	return ExtentsOf(bbox.Size()), nil
}

// TriangleArea returns half the magnitude of the cross product of two edge
// vectors. Collinear or coincident vertices yield 0.
func TriangleArea(a, b, c Vector3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2.0
}
