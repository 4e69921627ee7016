package render

import (
	"image"
	"image/color"
	"math"
)

// fillTriangle fills a screen space triangle with depth testing. Pixels are
// written where the interpolated depth is smaller than the buffer value.
func fillTriangle(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	bounds := img.Bounds()
	width := bounds.Max.X
	top, bottom := vertices[0][1], vertices[2][1]
	if top == bottom {
		return
	}

	for y := int(math.Max(0, math.Ceil(top))); y <= int(math.Floor(math.Min(float64(bounds.Max.Y-1), bottom))); y++ {
		fy := float64(y)

		// The long edge spans every row; the short edge switches at the middle vertex
		xStart, zStart := edgeAt(vertices[0], vertices[2], fy)
		var xEnd, zEnd float64
		if fy < vertices[1][1] {
			xEnd, zEnd = edgeAt(vertices[0], vertices[1], fy)
		} else {
			xEnd, zEnd = edgeAt(vertices[1], vertices[2], fy)
		}

		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		for x := int(math.Max(0, math.Ceil(xStart))); x <= int(math.Floor(math.Min(float64(bounds.Max.X-1), xEnd))); x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// edgeAt interpolates x and depth along an edge at row y. Horizontal edges
// return their first vertex.
func edgeAt(a, b [3]float64, y float64) (float64, float64) {
	if a[1] == b[1] {
		return a[0], a[2]
	}
	t := (y - a[1]) / (b[1] - a[1])
	return a[0] + t*(b[0]-a[0]), a[2] + t*(b[2]-a[2])
}

// drawLine draws a line using Bresenham's algorithm, without depth testing
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for steps := 0; steps <= dx+dy; steps++ {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
