// Package report turns the cards of a plate into a priced quote and
// exports it as PDF or spreadsheet.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/pkg/estimate"
)

// ErrEmptyQuote is returned when exporting a quote without lines
var ErrEmptyQuote = errors.New("quote has no models")

// Line is one model on a quote
type Line struct {
	ModelID  int     `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Scale    float64 `json:"scale"`
	Length   float64 `json:"length_mm"`
	Width    float64 `json:"width_mm"`
	Height   float64 `json:"height_mm"`
	Layers   int     `json:"layers"`
	Minutes  int     `json:"minutes"`
	Cost     float64 `json:"cost"`
	Oversize bool    `json:"oversize,omitempty"`
}

// Quote is a priced snapshot of a plate
type Quote struct {
	ID           string    `json:"id"`
	Created      time.Time `json:"created"`
	Currency     string    `json:"currency"`
	HourlyRate   float64   `json:"hourly_rate"`
	Lines        []Line    `json:"lines"`
	TotalMinutes int       `json:"total_minutes"`
	TotalCost    float64   `json:"total_cost"`

	Preview []byte `json:"-"` // optional PNG of the plate, added to the PDF
}

// NewQuote builds a quote from the cards of a plate
func NewQuote(cards []plate.Card, cfg config.Config) Quote {
	q := Quote{
		ID:         uuid.New().String()[:8],
		Created:    time.Now(),
		Currency:   cfg.Currency,
		HourlyRate: cfg.HourlyRate,
		Lines:      make([]Line, 0, len(cards)),
	}

	for _, c := range cards {
		q.Lines = append(q.Lines, Line{
			ModelID:  c.ID,
			Name:     c.Name,
			Color:    c.Color,
			Scale:    c.Scale,
			Length:   c.Dimensions.Length,
			Width:    c.Dimensions.Width,
			Height:   c.Dimensions.Height,
			Layers:   c.Layers,
			Minutes:  c.Minutes,
			Cost:     c.Cost,
			Oversize: !c.Fits(),
		})
		q.TotalMinutes += c.Minutes
		q.TotalCost += c.Cost
	}

	return q
}

// FormatCost renders a cost in the quote's currency
func (q Quote) FormatCost(cost float64) string {
	return estimate.FormatCost(q.Currency, cost)
}

// summary is the compact form encoded into the QR code
type summary struct {
	ID      string  `json:"id"`
	Models  int     `json:"models"`
	Minutes int     `json:"minutes"`
	Cost    float64 `json:"cost"`
	Created string  `json:"created"`
}

func (q Quote) summary() summary {
	return summary{
		ID:      q.ID,
		Models:  len(q.Lines),
		Minutes: q.TotalMinutes,
		Cost:    q.TotalCost,
		Created: q.Created.Format(time.RFC3339),
	}
}
