package viewer

import (
	"fmt"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/printplate/internal/plate"
)

const (
	panelX       = 10
	panelWidth   = 340
	cardHeight   = 74
	fontSize     = 16
	smallFont    = 14
	lineSpacing  = 18
	panelPadding = 8
)

var (
	panelColor = rl.NewColor(25, 30, 40, 220)
	textColor  = rl.NewColor(220, 220, 220, 255)
	dimColor   = rl.NewColor(150, 150, 160, 255)
)

// drawHUD draws one card per model, the plate totals, the status line and
// the key help
func (v *Viewer) drawHUD() {
	y := int32(10)
	for _, card := range v.reg.Cards() {
		v.drawCard(card, y)
		y += cardHeight + 6
	}

	totals := v.reg.Totals()
	rl.DrawRectangle(panelX, y, panelWidth, 28, panelColor)
	rl.DrawText(fmt.Sprintf("%d model(s)  %d min  %s", totals.Models, totals.Minutes, v.reg.FormatCost(totals.Cost)),
		panelX+panelPadding, y+6, fontSize, textColor)

	screenH := int32(rl.GetScreenHeight())
	if v.status != "" && time.Now().Before(v.statusUntil) {
		rl.DrawText(v.status, panelX, screenH-48, fontSize, rl.Yellow)
	}
	rl.DrawText("Drag: move  Right drag: orbit  Wheel: zoom  +/-: scale  C: colour  Del: remove  Tab: select  R: reset view  Drop files to import",
		panelX, screenH-24, smallFont, dimColor)
}

func (v *Viewer) drawCard(card plate.Card, y int32) {
	rl.DrawRectangle(panelX, y, panelWidth, cardHeight, panelColor)
	if card.ID == v.selected {
		rl.DrawRectangleLines(panelX, y, panelWidth, cardHeight, selectedColor)
	}

	swatch := v.cfg.Palette.RGBA(card.Color)
	rl.DrawRectangle(panelX+panelPadding, y+panelPadding, 14, 14, rl.NewColor(swatch.R, swatch.G, swatch.B, 255))

	x := int32(panelX + panelPadding + 22)
	line := y + panelPadding
	rl.DrawText(fmt.Sprintf("#%d %s  %s%%", card.ID, card.Name, strconv.FormatFloat(card.Scale, 'f', -1, 64)), x, line, fontSize, textColor)

	line += lineSpacing
	dx := x
	for i, value := range [3]float64{card.Dimensions.Length, card.Dimensions.Width, card.Dimensions.Height} {
		c := textColor
		if card.Oversize[i] {
			c = oversizeColor
		}
		text := fmt.Sprintf("%.2f", value)
		if i < 2 {
			text += " x "
		} else {
			text += " mm"
		}
		rl.DrawText(text, dx, line, smallFont, c)
		dx += rl.MeasureText(text, smallFont)
	}

	line += lineSpacing
	rl.DrawText(fmt.Sprintf("Layers: %d  Time: %d min  Cost: %s", card.Layers, card.Minutes, v.reg.FormatCost(card.Cost)),
		x, line, smallFont, dimColor)
}
