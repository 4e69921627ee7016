package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const gridSpacing = 10.0

var (
	gridColor     = rl.NewColor(60, 65, 80, 255)
	volumeColor   = rl.NewColor(90, 140, 200, 255)
	boundsColor   = rl.NewColor(150, 150, 150, 255)
	selectedColor = rl.Yellow
	oversizeColor = rl.Red
)

// drawPlate draws the plate grid at z=0 and the build volume wireframe
func (v *Viewer) drawPlate() {
	size := float32(v.cfg.BuildVolume)
	half := size / 2

	for x := -half; x <= half+0.001; x += gridSpacing {
		rl.DrawLine3D(rl.NewVector3(x, -half, 0), rl.NewVector3(x, half, 0), gridColor)
	}
	for y := -half; y <= half+0.001; y += gridSpacing {
		rl.DrawLine3D(rl.NewVector3(-half, y, 0), rl.NewVector3(half, y, 0), gridColor)
	}

	rl.DrawCubeWires(rl.NewVector3(0, 0, half), size, size, size, volumeColor)
}

// drawModels draws every model with its bounding box
func (v *Viewer) drawModels() {
	for _, id := range v.reg.IDs() {
		p := v.proxy(id)
		if p == nil {
			continue
		}

		rl.DrawMesh(p.mesh, v.material, rl.MatrixTranslate(p.position.X, p.position.Y, p.position.Z))

		c := boundsColor
		switch {
		case v.oversize(p):
			c = oversizeColor
		case id == v.selected:
			c = selectedColor
		}
		rl.DrawBoundingBox(p.box(), c)
	}
}

func (v *Viewer) oversize(p *proxy) bool {
	limit := float32(v.cfg.BuildVolume)
	return p.size.X > limit || p.size.Y > limit || p.size.Z > limit
}
