package report

import (
	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/pkg/render"
)

// Preview image size in pixels
const (
	PreviewWidth  = 1200
	PreviewHeight = 800
)

// PlatePreview renders the models at their plate positions as a PNG
func PlatePreview(entries []plate.Entry, cfg config.Config) ([]byte, error) {
	scene := render.Scene{BuildVolume: cfg.BuildVolume}
	for _, e := range entries {
		scene.Items = append(scene.Items, render.Item{
			Model:  e.Mesh,
			Offset: e.Position,
			Color:  cfg.Palette.RGBA(e.Color),
		})
	}

	img := render.Render(scene, render.NewPlateCamera(cfg.BuildVolume), PreviewWidth, PreviewHeight)
	return render.EncodePNG(img)
}
