package config

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Swatch is a named display colour
type Swatch struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"` // "#rrggbb"
}

// Palette is the ordered list of colours a model may take
type Palette []Swatch

// DefaultPalette returns the ten built-in colours
func DefaultPalette() Palette {
	return Palette{
		{Name: "pink", Hex: "#ffc0cb"},
		{Name: "red", Hex: "#ff0000"},
		{Name: "orange", Hex: "#ffa500"},
		{Name: "yellow", Hex: "#ffff00"},
		{Name: "green", Hex: "#008000"},
		{Name: "blue", Hex: "#0000ff"},
		{Name: "purple", Hex: "#800080"},
		{Name: "white", Hex: "#ffffff"},
		{Name: "grey", Hex: "#808080"},
		{Name: "black", Hex: "#222222"},
	}
}

// Names returns the colour names in palette order
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return names
}

// Has reports whether name is a palette colour
func (p Palette) Has(name string) bool {
	_, ok := p.lookup(name)
	return ok
}

// Hex returns the display value of a colour
func (p Palette) Hex(name string) (string, bool) {
	s, ok := p.lookup(name)
	return s.Hex, ok
}

// RGBA returns the colour as image/color, falling back to grey for unknown
// names.
func (p Palette) RGBA(name string) color.RGBA {
	s, ok := p.lookup(name)
	if !ok {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	c, err := parseHex(s.Hex)
	if err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return c
}

// Random picks a colour name using r
func (p Palette) Random(r *rand.Rand) string {
	if len(p) == 0 {
		return ""
	}
	return p[r.IntN(len(p))].Name
}

// Next returns the colour following name, wrapping around
func (p Palette) Next(name string) string {
	for i, s := range p {
		if s.Name == name {
			return p[(i+1)%len(p)].Name
		}
	}
	if len(p) == 0 {
		return ""
	}
	return p[0].Name
}

// Validate checks for an empty palette, duplicate names and bad hex values
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	seen := make(map[string]bool, len(p))
	for _, s := range p {
		if s.Name == "" {
			return fmt.Errorf("palette colour without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate palette colour %q", s.Name)
		}
		seen[s.Name] = true
		if _, err := parseHex(s.Hex); err != nil {
			return fmt.Errorf("palette colour %q: %w", s.Name, err)
		}
	}
	return nil
}

func (p Palette) lookup(name string) (Swatch, bool) {
	for _, s := range p {
		if s.Name == name {
			return s, true
		}
	}
	return Swatch{}, false
}

func parseHex(hex string) (color.RGBA, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", hex)
	}
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xff,
	}, nil
}
