package stl

import (
	"github.com/philipparndt/printplate/pkg/geometry"
)

// Model represents a triangle mesh loaded from an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new, empty STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Vertices returns the flat vertex list, three consecutive entries per triangle
func (m *Model) Vertices() []geometry.Vector3 {
	vertices := make([]geometry.Vector3, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		vertices = append(vertices, t.V1, t.V2, t.V3)
	}
	return vertices
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// Extents returns the size of the model's bounding box
func (m *Model) Extents() (geometry.Extents, error) {
	return geometry.BoundingBoxSize(m.Vertices())
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Translate moves every vertex by offset
func (m *Model) Translate(offset geometry.Vector3) {
	for i, t := range m.Triangles {
		m.Triangles[i] = t.Transform(func(v geometry.Vector3) geometry.Vector3 {
			return v.Add(offset)
		})
	}
}

// Center moves the model so its bounding box is centred on the origin and
// returns the applied offset.
func (m *Model) Center() geometry.Vector3 {
	if len(m.Triangles) == 0 {
		return geometry.Vector3{}
	}
	offset := m.BoundingBox().Center().Mul(-1)
	m.Translate(offset)
	return offset
}

// ScaleTo rescales the model in place so its bounding box matches target.
// Each axis is scaled independently relative to the current bounds, around
// the bounding box centre. Axes with zero current size are left untouched.
func (m *Model) ScaleTo(target geometry.Extents) {
	if len(m.Triangles) == 0 {
		return
	}

	bbox := m.BoundingBox()
	size := bbox.Size()
	center := bbox.Center()
	factors := geometry.NewVector3(
		scaleFactor(target.Length, size.X),
		scaleFactor(target.Width, size.Y),
		scaleFactor(target.Height, size.Z),
	)

	for i, t := range m.Triangles {
		m.Triangles[i] = t.Transform(func(v geometry.Vector3) geometry.Vector3 {
			return v.Sub(center).Scale(factors).Add(center)
		})
	}
}

func scaleFactor(target, current float64) float64 {
	if current == 0 {
		return 1
	}
	return target / current
}

// Clone returns a deep copy of the model
func (m *Model) Clone() *Model {
	clone := &Model{
		Name:      m.Name,
		Triangles: make([]geometry.Triangle, len(m.Triangles)),
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
