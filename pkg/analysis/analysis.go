// Package analysis computes descriptive statistics of a mesh.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/stl"
)

// Summary describes a mesh independent of any print settings
type Summary struct {
	Triangles     int
	Degenerate    int // triangles with zero area
	Extents       geometry.Extents
	SurfaceArea   float64
	Volume        float64 // enclosed volume; only meaningful for closed meshes
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Analyze summarises a model
func Analyze(model *stl.Model) (Summary, error) {
	extents, err := model.Extents()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Triangles:     model.TriangleCount(),
		Extents:       extents,
		MinEdgeLength: math.MaxFloat64,
	}

	total := 0.0
	signed := 0.0
	for _, t := range model.Triangles {
		area := t.Area()
		s.SurfaceArea += area
		if area == 0 {
			s.Degenerate++
		}
		signed += t.V1.Dot(t.V2.Cross(t.V3)) / 6

		for _, length := range []float64{t.V1.Distance(t.V2), t.V2.Distance(t.V3), t.V3.Distance(t.V1)} {
			total += length
			s.MinEdgeLength = math.Min(s.MinEdgeLength, length)
			s.MaxEdgeLength = math.Max(s.MaxEdgeLength, length)
		}
	}

	s.Volume = math.Abs(signed)
	s.AvgEdgeLength = total / float64(3*s.Triangles)
	return s, nil
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
