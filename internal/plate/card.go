package plate

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/printplate/pkg/estimate"
	"github.com/philipparndt/printplate/pkg/geometry"
)

// Card is the read-only summary shown for one model
type Card struct {
	ID         int
	Name       string
	Color      string
	Scale      float64
	Dimensions geometry.Extents
	Oversize   [3]bool // length, width, height exceed the build volume
	Position   geometry.Vector3
	Layers     int
	Minutes    int
	Cost       float64
}

// Fits reports whether the model fits the build volume on every axis
func (c Card) Fits() bool {
	return !c.Oversize[0] && !c.Oversize[1] && !c.Oversize[2]
}

// Totals sums the cards of a plate
type Totals struct {
	Models  int
	Minutes int
	Cost    float64
}

// Card returns the summary of one model
func (r *Registry) Card(id int) (Card, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Card{}, err
	}
	return r.card(e), nil
}

// Cards returns the summaries of all models in import order
func (r *Registry) Cards() []Card {
	cards := make([]Card, 0, len(r.order))
	for _, id := range r.order {
		cards = append(cards, r.card(r.entries[id]))
	}
	return cards
}

// Totals sums time and cost over all models. Each model is billed on its
// own, so the total cost is the sum of the card costs.
func (r *Registry) Totals() Totals {
	var t Totals
	for _, id := range r.order {
		e := r.entries[id]
		t.Models++
		t.Minutes += e.Estimate.Minutes
		t.Cost += e.Cost
	}
	return t
}

// FormatCost renders a cost in the configured currency
func (r *Registry) FormatCost(cost float64) string {
	return estimate.FormatCost(r.cfg.Currency, cost)
}

func (r *Registry) card(e *Entry) Card {
	fits := r.policy.Fits(e.Dimensions())
	return Card{
		ID:         e.ID,
		Name:       e.Name,
		Color:      e.Color,
		Scale:      e.Scale,
		Dimensions: e.Dimensions(),
		Oversize:   [3]bool{!fits[0], !fits[1], !fits[2]},
		Position:   e.Position,
		Layers:     e.Estimate.Layers,
		Minutes:    e.Estimate.Minutes,
		Cost:       e.Cost,
	}
}

// String renders the card as the multi-line text used by the command line
func (c Card) String() string {
	return fmt.Sprintf("#%d %s (%s, %s%%)\n  Size: %.2f x %.2f x %.2f mm\n  Layers: %d  Time: %d min",
		c.ID, c.Name, c.Color, strconv.FormatFloat(c.Scale, 'f', -1, 64),
		c.Dimensions.Length, c.Dimensions.Width, c.Dimensions.Height,
		c.Layers, c.Minutes)
}
