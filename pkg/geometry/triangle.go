package geometry

import "math"

// Triangle represents a triangular facet. Winding is not relied upon.
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return TriangleArea(t.V1, t.V2, t.V3)
}

// Normal computes the unit facet normal from the vertex winding.
// Degenerate triangles return the zero vector.
func (t Triangle) Normal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// ZRange returns the lowest and highest Z coordinate of the three vertices.
func (t Triangle) ZRange() (float64, float64) {
	return math.Min(t.V1.Z, math.Min(t.V2.Z, t.V3.Z)),
		math.Max(t.V1.Z, math.Max(t.V2.Z, t.V3.Z))
}

// Transform returns a copy with fn applied to every vertex.
func (t Triangle) Transform(fn func(Vector3) Vector3) Triangle {
	return Triangle{V1: fn(t.V1), V2: fn(t.V2), V3: fn(t.V3)}
}
