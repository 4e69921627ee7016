package placement

import (
	"testing"

	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 40.0, Clamp(1000, 50, 90))
	assert.Equal(t, -40.0, Clamp(-1000, 50, 90))
	assert.Equal(t, 12.5, Clamp(12.5, 50, 90))
	assert.Equal(t, 40.0, Clamp(40, 50, 90))
}

func TestClampOversizedPinsToCenter(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(1000, 100, 90))
	assert.Equal(t, 0.0, Clamp(-3, 100, 90))
}

func TestClampExactFit(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(25, 90, 90))
}

func TestPolicyClampsAxesIndependently(t *testing.T) {
	p := NewPolicy(180)

	x, y := p.Clamp(1000, -1000, 50, 10)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, -80.0, y)

	x, y = p.ClampExtents(-500, 3, geometry.Extents{Length: 300, Width: 20, Height: 5})
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 3.0, y)
}

func TestPolicyFits(t *testing.T) {
	p := NewPolicy(180)

	assert.Equal(t, [3]bool{true, true, true}, p.Fits(geometry.Extents{Length: 180, Width: 10, Height: 10}))
	assert.Equal(t, [3]bool{true, false, true}, p.Fits(geometry.Extents{Length: 10, Width: 181, Height: 10}))
}
