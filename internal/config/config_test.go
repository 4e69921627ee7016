package config

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.2, cfg.LayerHeight)
	assert.Equal(t, 0.15, cfg.Infill)
	assert.Equal(t, 0.055, cfg.TimePerArea)
	assert.Equal(t, 180.0, cfg.BuildVolume)
	assert.Equal(t, 0.5, cfg.HourlyRate)
	assert.Len(t, cfg.Palette, 10)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.HourlyRate = 2
	cfg.BuildVolume = 220
	cfg.DefaultColor = "blue"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hourly_rate: 1.25\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.25, cfg.HourlyRate)
	assert.Equal(t, 0.2, cfg.LayerHeight)
	assert.Equal(t, DefaultPalette(), cfg.Palette)
}

func TestLoadCustomPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("palette:\n  - name: teal\n    hex: \"#008080\"\n  - name: gold\n    hex: \"#ffd700\"\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"teal", "gold"}, cfg.Palette.Names())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layer_height: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layer_height: 0\n"), 0644))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(*Config){
		"build volume":  func(c *Config) { c.BuildVolume = 0 },
		"hourly rate":   func(c *Config) { c.HourlyRate = -1 },
		"infill":        func(c *Config) { c.Infill = 2 },
		"empty palette": func(c *Config) { c.Palette = nil },
		"duplicate":     func(c *Config) { c.Palette = append(c.Palette, Swatch{Name: "red", Hex: "#ff0000"}) },
		"bad hex":       func(c *Config) { c.Palette[0].Hex = "pink" },
		"default color": func(c *Config) { c.DefaultColor = "chartreuse" },
	}

	for name, mutate := range mutations {
		cfg := Default()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, name)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()

	assert.True(t, p.Has("grey"))
	assert.False(t, p.Has("Grey"))

	hex, ok := p.Hex("black")
	assert.True(t, ok)
	assert.Equal(t, "#222222", hex)

	c := p.RGBA("orange")
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0xa5), c.G)
	assert.Equal(t, uint8(0x00), c.B)

	assert.Equal(t, "red", p.Next("pink"))
	assert.Equal(t, "pink", p.Next("black"))
	assert.Equal(t, "pink", p.Next("unknown"))
}

func TestPaletteRandomStaysInPalette(t *testing.T) {
	p := DefaultPalette()
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		assert.True(t, p.Has(p.Random(r)))
	}
}
