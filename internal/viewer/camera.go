package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// orbitCamera circles a target point with Z as the up axis
type orbitCamera struct {
	camera    rl.Camera3D
	target    rl.Vector3
	distance  float32
	azimuth   float32
	elevation float32

	defaultTarget   rl.Vector3
	defaultDistance float32
}

func newOrbitCamera(buildVolume float64) orbitCamera {
	c := orbitCamera{
		camera: rl.Camera3D{
			Up:         rl.NewVector3(0, 0, 1),
			Fovy:       45.0,
			Projection: rl.CameraPerspective,
		},
		defaultTarget:   rl.NewVector3(0, 0, float32(buildVolume/4)),
		defaultDistance: float32(buildVolume * 2),
	}
	c.reset()
	return c
}

// reset returns to the default view, looking at the plate from the front
func (c *orbitCamera) reset() {
	c.target = c.defaultTarget
	c.distance = c.defaultDistance
	c.azimuth = -math.Pi / 2
	c.elevation = 0.6
}

// update recomputes the camera position from the orbit angles
func (c *orbitCamera) update() {
	cosEl := float32(math.Cos(float64(c.elevation)))
	offset := rl.NewVector3(
		c.distance*cosEl*float32(math.Cos(float64(c.azimuth))),
		c.distance*cosEl*float32(math.Sin(float64(c.azimuth))),
		c.distance*float32(math.Sin(float64(c.elevation))),
	)
	c.camera.Position = rl.Vector3Add(c.target, offset)
	c.camera.Target = c.target
}

// orbit rotates the camera by a mouse delta in pixels
func (c *orbitCamera) orbit(delta rl.Vector2) {
	c.azimuth -= delta.X * 0.01
	c.elevation += delta.Y * 0.01
	c.elevation = float32(math.Max(0.05, math.Min(math.Pi/2-0.01, float64(c.elevation))))
}

// zoom moves the camera towards or away from the target
func (c *orbitCamera) zoom(wheel float32) {
	c.distance *= 1 - wheel*0.1
	c.distance = float32(math.Max(10, math.Min(float64(c.defaultDistance)*5, float64(c.distance))))
}
