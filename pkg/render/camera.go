package render

import (
	"math"

	"github.com/philipparndt/printplate/pkg/geometry"
)

// Camera orbits a target point with Z as the up axis
type Camera struct {
	Target    geometry.Vector3
	Distance  float64
	Azimuth   float64 // rotation around Z, radians
	Elevation float64 // angle above the XY plane, radians
	FOV       float64 // vertical field of view in radians
}

// NewPlateCamera returns a camera looking at the whole build volume from
// the front and above
func NewPlateCamera(buildVolume float64) Camera {
	return Camera{
		Target:    geometry.NewVector3(0, 0, buildVolume/4),
		Distance:  buildVolume * 2,
		Azimuth:   -math.Pi / 2,
		Elevation: 0.6,
		FOV:       math.Pi / 4,
	}
}

// Position returns the camera position in world space
func (c Camera) Position() geometry.Vector3 {
	cosEl := math.Cos(c.Elevation)
	return c.Target.Add(geometry.NewVector3(
		c.Distance*cosEl*math.Cos(c.Azimuth),
		c.Distance*cosEl*math.Sin(c.Azimuth),
		c.Distance*math.Sin(c.Elevation),
	))
}

// Rotate changes the orbit angles
func (c *Camera) Rotate(deltaAzimuth, deltaElevation float64) {
	c.Azimuth += deltaAzimuth
	c.Elevation += deltaElevation

	maxAngle := math.Pi/2 - 0.01
	c.Elevation = math.Max(-maxAngle, math.Min(maxAngle, c.Elevation))
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// basis returns the camera's right, up and forward unit vectors
func (c Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(geometry.NewVector3(0, 0, 1)).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a 3D point to screen coordinates and returns its depth
// along the view direction
func (c Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	right, up, forward := c.basis()

	relative := point.Sub(c.Position())
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Unproject returns the ray from the camera through a screen position
func (c Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	right, up, forward := c.basis()
	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))

	return geometry.Ray{Origin: c.Position(), Direction: dir.Normalize()}
}
