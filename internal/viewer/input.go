package viewer

import (
	"context"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/pkg/geometry"
)

const scaleStep = 10.0

// handleInput processes mouse, keyboard and file drop input
func (v *Viewer) handleInput(ctx context.Context) {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ray := rl.GetMouseRay(mouse, v.camera.camera)
		v.selected = v.pick(ray)
		v.startDrag(ray)
	}
	if v.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		v.drag(rl.GetMouseRay(mouse, v.camera.camera))
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		v.dragging = false
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		v.camera.orbit(rl.GetMouseDelta())
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.zoom(wheel)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		v.camera.reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.selectNext()
	}

	if v.selected != 0 {
		switch {
		case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
			v.scaleBy(scaleStep)
		case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
			v.scaleBy(-scaleStep)
		case rl.IsKeyPressed(rl.KeyC):
			v.cycleColor()
		case rl.IsKeyPressed(rl.KeyDelete), rl.IsKeyPressed(rl.KeyBackspace):
			v.report(v.reg.Remove(v.selected))
		}
	}

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		rl.UnloadDroppedFiles()
		v.load(ctx, files)
	}
}

// pick returns the id of the nearest model hit by ray, or 0
func (v *Viewer) pick(ray rl.Ray) int {
	return nearest(v.reg.IDs(), func(id int) (float32, bool) {
		p := v.proxy(id)
		if p == nil {
			return 0, false
		}
		collision := rl.GetRayCollisionBox(ray, p.box())
		return collision.Distance, collision.Hit
	})
}

// nearest returns the id with the smallest hit distance, or 0 when nothing
// is hit. Ties go to the earlier id.
func nearest(ids []int, hit func(id int) (float32, bool)) int {
	best := 0
	var bestDistance float32
	for _, id := range ids {
		distance, ok := hit(id)
		if ok && (best == 0 || distance < bestDistance) {
			best = id
			bestDistance = distance
		}
	}
	return best
}

// startDrag remembers where on the model's mid plane the drag started so
// the model does not jump to the cursor
func (v *Viewer) startDrag(ray rl.Ray) {
	p := v.proxy(v.selected)
	if p == nil {
		return
	}
	offset, ok := grabOffset(toRay(ray), fromRL(p.position))
	if !ok {
		return
	}
	v.dragOffset = offset
	v.dragging = true
}

// drag moves the selected model to follow the cursor across the plate
func (v *Viewer) drag(ray rl.Ray) {
	p := v.proxy(v.selected)
	if p == nil {
		v.dragging = false
		return
	}
	target, ok := dragTarget(toRay(ray), fromRL(p.position), v.dragOffset)
	if !ok {
		return
	}
	_, err := v.reg.SetPosition(v.selected, target.X, target.Y)
	v.report(err)
}

// grabOffset is the vector from where ray meets the horizontal plane
// through center to center itself
func grabOffset(ray geometry.Ray, center geometry.Vector3) (geometry.Vector3, bool) {
	point, ok := ray.IntersectZ(center.Z)
	if !ok {
		return geometry.Vector3{}, false
	}
	return center.Sub(point), true
}

// dragTarget is the unclamped centre that keeps the grab offset under the cursor
func dragTarget(ray geometry.Ray, center, offset geometry.Vector3) (geometry.Vector3, bool) {
	point, ok := ray.IntersectZ(center.Z)
	if !ok {
		return geometry.Vector3{}, false
	}
	return point.Add(offset), true
}

func (v *Viewer) scaleBy(delta float64) {
	card, err := v.reg.Card(v.selected)
	if err != nil {
		v.report(err)
		return
	}
	v.report(v.reg.SetScale(v.selected, card.Scale+delta))
}

func (v *Viewer) cycleColor() {
	card, err := v.reg.Card(v.selected)
	if err != nil {
		v.report(err)
		return
	}
	v.report(v.reg.SetColor(v.selected, v.cfg.Palette.Next(card.Color)))
}

func (v *Viewer) selectNext() {
	v.selected = nextSelection(v.reg.IDs(), v.selected)
}

// nextSelection cycles through ids in order, starting over after the last
// one or when current is not among them
func nextSelection(ids []int, current int) int {
	if len(ids) == 0 {
		return 0
	}
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// report shows a failed registry operation in the status line
func (v *Viewer) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, plate.ErrUnknownModel) {
		v.selected = 0
		v.dragging = false
	}
	fmt.Printf("Error: %v\n", err)
	v.setStatus(err.Error())
}

func toRay(r rl.Ray) geometry.Ray {
	return geometry.Ray{Origin: fromRL(r.Position), Direction: fromRL(r.Direction)}
}
