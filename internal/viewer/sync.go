package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/printplate/internal/plate"
)

// proxy is the rendered form of one model
type proxy struct {
	mesh     rl.Mesh
	position rl.Vector3
	size     rl.Vector3
}

// box returns the world space bounding box of the model
func (p *proxy) box() rl.BoundingBox {
	half := rl.Vector3Scale(p.size, 0.5)
	return rl.NewBoundingBox(rl.Vector3Subtract(p.position, half), rl.Vector3Add(p.position, half))
}

func (p *proxy) place(e plate.Entry) {
	p.position = toRL(e.Position)
	p.size = toRL(e.Dimensions().Vector())
}

// Added uploads the mesh of a new model
func (v *Viewer) Added(e plate.Entry) plate.Proxy {
	p := &proxy{}
	p.mesh = buildMesh(e.Mesh, v.cfg.Palette.RGBA(e.Color))
	p.place(e)
	return p
}

// Transformed moves a model
func (v *Viewer) Transformed(e plate.Entry, pr plate.Proxy) {
	if p, ok := pr.(*proxy); ok {
		p.place(e)
	}
}

// Reshaped replaces the mesh after a scale or reload
func (v *Viewer) Reshaped(e plate.Entry, pr plate.Proxy) {
	v.rebuild(e, pr)
}

// Recolored bakes the new colour into the mesh
func (v *Viewer) Recolored(e plate.Entry, pr plate.Proxy) {
	v.rebuild(e, pr)
}

// Removed unloads the mesh of a deleted model
func (v *Viewer) Removed(id int, pr plate.Proxy) {
	if p, ok := pr.(*proxy); ok {
		rl.UnloadMesh(&p.mesh)
	}
	delete(v.sources, id)
	if v.selected == id {
		v.selected = 0
		v.dragging = false
	}
}

func (v *Viewer) rebuild(e plate.Entry, pr plate.Proxy) {
	p, ok := pr.(*proxy)
	if !ok {
		return
	}
	rl.UnloadMesh(&p.mesh)
	p.mesh = buildMesh(e.Mesh, v.cfg.Palette.RGBA(e.Color))
	p.place(e)
}

func (v *Viewer) proxy(id int) *proxy {
	pr, err := v.reg.Proxy(id)
	if err != nil {
		return nil
	}
	p, _ := pr.(*proxy)
	return p
}
