// Package render draws a build plate and its models into an image without a
// GPU, for previews and reports.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/stl"
)

const gridSpacing = 10.0

var (
	// Background is the colour of empty pixels
	Background  = color.RGBA{R: 15, G: 18, B: 25, A: 255}
	gridColor   = color.RGBA{R: 60, G: 65, B: 80, A: 255}
	volumeColor = color.RGBA{R: 90, G: 140, B: 200, A: 255}
)

// lightDir is the direction of the light, from above and in front
var lightDir = geometry.NewVector3(-0.5, -0.5, -1.0).Normalize()

// Item is one model placed on the plate
type Item struct {
	Model  *stl.Model // centred on the origin
	Offset geometry.Vector3
	Color  color.RGBA
}

// Scene is a build plate with its models
type Scene struct {
	BuildVolume float64
	Items       []Item
}

// Shade applies diffuse lighting with 30% ambient to a base colour
func Shade(base color.RGBA, normal geometry.Vector3) color.RGBA {
	intensity := math.Max(0.3, -normal.Dot(lightDir))
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: 255,
	}
}

// Render draws the plate grid, the build volume and all items as seen by cam
func Render(scene Scene, cam Camera, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	r := rasterizer{img: img, cam: cam, width: float64(width), height: float64(height)}
	r.plate(scene.BuildVolume)

	for _, item := range scene.Items {
		if item.Model == nil {
			continue
		}
		for _, t := range item.Model.Triangles {
			col := Shade(item.Color, t.Normal())
			x1, y1, z1 := r.project(t.V1.Add(item.Offset))
			x2, y2, z2 := r.project(t.V2.Add(item.Offset))
			x3, y3, z3 := r.project(t.V3.Add(item.Offset))
			fillTriangle(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
		}
	}

	return img
}

// EncodePNG encodes an image as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

type rasterizer struct {
	img           *image.RGBA
	cam           Camera
	width, height float64
}

func (r rasterizer) project(p geometry.Vector3) (float64, float64, float64) {
	return r.cam.Project(p, r.width, r.height)
}

func (r rasterizer) line(a, b geometry.Vector3, col color.RGBA) {
	x1, y1, _ := r.project(a)
	x2, y2, _ := r.project(b)
	drawLine(r.img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
}

// plate draws the grid at z=0 and the edges of the build volume
func (r rasterizer) plate(size float64) {
	if size <= 0 {
		return
	}
	half := size / 2
	v := geometry.NewVector3

	for d := -half; d <= half+1e-9; d += gridSpacing {
		r.line(v(d, -half, 0), v(d, half, 0), gridColor)
		r.line(v(-half, d, 0), v(half, d, 0), gridColor)
	}

	corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	for i, c := range corners {
		n := corners[(i+1)%4]
		r.line(v(c[0], c[1], 0), v(n[0], n[1], 0), volumeColor)
		r.line(v(c[0], c[1], size), v(n[0], n[1], size), volumeColor)
		r.line(v(c[0], c[1], 0), v(c[0], c[1], size), volumeColor)
	}
}
