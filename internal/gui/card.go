package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/printplate/internal/plate"
)

// cardView is the proxy of one model: a card with its controls and figures
type cardView struct {
	id     int
	card   *widget.Card
	scale  *widget.Entry
	color  *widget.Select
	size   *widget.Label
	layers *widget.Label
	time   *widget.Label
	cost   *widget.Label
	warn   *widget.Label
}

func (a *App) newCardView(e plate.Entry) *cardView {
	v := &cardView{
		id:     e.ID,
		scale:  widget.NewEntry(),
		size:   widget.NewLabel(""),
		layers: widget.NewLabel(""),
		time:   widget.NewLabel(""),
		cost:   widget.NewLabel(""),
		warn:   widget.NewLabel(""),
	}
	v.warn.Importance = widget.DangerImportance

	v.scale.OnSubmitted = func(text string) {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(text), "%"), 64)
		if err != nil {
			dialog.ShowError(fmt.Errorf("invalid scale %q", text), a.window)
			a.refreshCard(v)
			return
		}
		a.apply(a.reg.SetScale(v.id, percent))
	}

	v.color = widget.NewSelect(a.cfg.Palette.Names(), func(name string) {
		if name == "" {
			return
		}
		if current, err := a.reg.Get(v.id); err == nil && current.Color == name {
			return
		}
		a.apply(a.reg.SetColor(v.id, name))
	})

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		a.apply(a.reg.Remove(v.id))
	})

	form := widget.NewForm(
		widget.NewFormItem("Scale %", v.scale),
		widget.NewFormItem("Colour", v.color),
	)
	figures := container.NewGridWithColumns(2, v.size, v.layers, v.time, v.cost)

	v.card = widget.NewCard(fmt.Sprintf("#%d %s", e.ID, e.Name), "",
		container.NewVBox(form, figures, container.NewBorder(nil, nil, nil, remove, v.warn)))
	return v
}

// update copies the current card figures into the widgets
func (v *cardView) update(c plate.Card, formatCost func(float64) string) {
	v.scale.SetText(strconv.FormatFloat(c.Scale, 'f', -1, 64))
	v.color.Selected = c.Color
	v.color.Refresh()

	v.size.SetText(fmt.Sprintf("%.2f x %.2f x %.2f mm",
		c.Dimensions.Length, c.Dimensions.Width, c.Dimensions.Height))
	v.layers.SetText(fmt.Sprintf("%d layers", c.Layers))
	v.time.SetText(fmt.Sprintf("%d min", c.Minutes))
	v.cost.SetText(formatCost(c.Cost))

	if c.Fits() {
		v.warn.SetText("")
		return
	}
	var axes []string
	for i, axis := range []string{"length", "width", "height"} {
		if c.Oversize[i] {
			axes = append(axes, axis)
		}
	}
	v.warn.SetText("Exceeds build volume: " + strings.Join(axes, ", "))
}

// Added creates the card of a new model
func (a *App) Added(e plate.Entry) plate.Proxy {
	v := a.newCardView(e)
	a.refreshCard(v)
	a.cards.Add(v.card)
	a.changed()
	return v
}

// Transformed refreshes the preview after a move
func (a *App) Transformed(e plate.Entry, p plate.Proxy) {
	a.changed()
}

// Reshaped updates the figures after a scale or reload
func (a *App) Reshaped(e plate.Entry, p plate.Proxy) {
	if v, ok := p.(*cardView); ok {
		a.refreshCard(v)
	}
	a.changed()
}

// Recolored updates the colour selection and the preview
func (a *App) Recolored(e plate.Entry, p plate.Proxy) {
	if v, ok := p.(*cardView); ok {
		a.refreshCard(v)
	}
	a.changed()
}

// Removed drops the card of a deleted model
func (a *App) Removed(id int, p plate.Proxy) {
	if v, ok := p.(*cardView); ok {
		a.cards.Remove(v.card)
	}
	a.changed()
}

func (a *App) refreshCard(v *cardView) {
	c, err := a.reg.Card(v.id)
	if err != nil {
		return
	}
	v.update(c, a.reg.FormatCost)
}
