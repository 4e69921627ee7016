package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents holds the length (X), width (Y) and height (Z) of a bounding box.
type Extents struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ExtentsOf converts a size vector into extents
func ExtentsOf(size Vector3) Extents {
	return Extents{Length: size.X, Width: size.Y, Height: size.Z}
}

// Vector returns the extents as a size vector
func (e Extents) Vector() Vector3 {
	return Vector3{X: e.Length, Y: e.Width, Z: e.Height}
}

// Scaled returns the extents multiplied by percent/100 on every axis
func (e Extents) Scaled(percent float64) Extents {
	return ExtentsOf(e.Vector().Mul(percent / 100))
}

// Half returns half of each extent, the distance from the centre to a face
func (e Extents) Half() Extents {
	return ExtentsOf(e.Vector().Mul(0.5))
}
