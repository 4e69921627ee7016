package geometry

import "math"

// Ray is a half line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// IntersectZ returns the point where the ray crosses the horizontal plane at
// height z. Rays parallel to the plane or pointing away from it miss.
func (r Ray) IntersectZ(z float64) (Vector3, bool) {
	if math.Abs(r.Direction.Z) < 1e-12 {
		return Vector3{}, false
	}
	t := (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return Vector3{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}
