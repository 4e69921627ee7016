package plate

import (
	"math"
	"testing"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/pkg/estimate"
	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCreatesEntry(t *testing.T) {
	r, sync := newTestRegistry(t)

	id, err := r.Import("cube.stl", capsModel(10))
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	e, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "cube.stl", e.Name)
	assert.Equal(t, 100.0, e.Scale)
	assert.Equal(t, geometry.Extents{Length: 10, Width: 10, Height: 10}, e.Original)
	assert.Equal(t, geometry.NewVector3(0, 0, 5), e.Position)
	assert.True(t, config.DefaultPalette().Has(e.Color))
	assert.InDelta(t, 0, e.Mesh.BoundingBox().Center().Length(), 1e-9)

	require.Len(t, sync.calls, 1)
	assert.Equal(t, "added", sync.calls[0].kind)
	proxy, err := r.Proxy(id)
	require.NoError(t, err)
	assert.Equal(t, "proxy-cube.stl", proxy)
}

func TestImportEmptyMesh(t *testing.T) {
	r, sync := newTestRegistry(t)

	_, err := r.Import("empty.stl", stl.NewModel("empty"))
	assert.ErrorIs(t, err, geometry.ErrEmptyMesh)

	_, err = r.Import("nil.stl", nil)
	assert.ErrorIs(t, err, geometry.ErrEmptyMesh)

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, sync.calls)
}

func TestImportNonFiniteMesh(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		r, sync := newTestRegistry(t)
		m := boxModel(10, 10, 10)
		m.AddTriangle(geometry.NewTriangle(v(0, 0, 0), v(1, 0, bad), v(0, 1, 0)))

		_, err := r.Import("bad.stl", m)
		assert.ErrorIs(t, err, geometry.ErrNonFinite)
		assert.Equal(t, 0, r.Len())
		assert.Empty(t, sync.calls)
	}
}

func TestReloadNonFiniteMeshKeepsModel(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("cube.stl", boxModel(10, 10, 10))
	require.NoError(t, err)

	m := boxModel(10, 10, 10)
	m.AddTriangle(geometry.NewTriangle(v(0, 0, 0), v(1, 0, math.NaN()), v(0, 1, 0)))
	assert.ErrorIs(t, r.Reload(id, m), geometry.ErrNonFinite)

	e, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 50, e.Estimate.Layers)
}

func TestImportStrayVertexIsBounded(t *testing.T) {
	r, _ := newTestRegistry(t)
	m := boxModel(10, 10, 10)
	m.AddTriangle(geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 0, 1e9)))

	id, err := r.Import("stray.stl", m)
	require.NoError(t, err)

	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, estimate.MaxLayers, card.Layers)
	assert.True(t, card.Oversize[2])
}

func TestImportUsesDefaultColor(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultColor = "purple"
	r, err := New(cfg)
	require.NoError(t, err)

	id, err := r.Import("a.stl", capsModel(5))
	require.NoError(t, err)
	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, "purple", card.Color)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LayerHeight = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestEndToEndCubeEstimate(t *testing.T) {
	r, _ := newTestRegistry(t)

	id, err := r.Import("cube.stl", capsModel(10))
	require.NoError(t, err)

	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, 50, card.Layers)
	assert.GreaterOrEqual(t, card.Minutes, 0)
	assert.GreaterOrEqual(t, card.Cost, 0.0)

	blocks := card.Cost / r.Config().HourlyRate
	assert.InDelta(t, math.Round(blocks), blocks, 1e-9, "cost must be whole billing blocks")
	assert.Equal(t, float64((card.Minutes+14)/15)*0.5, card.Cost)
}

func TestLargeCubeEstimate(t *testing.T) {
	r, _ := newTestRegistry(t)

	id, err := r.Import("big.stl", capsModel(100))
	require.NoError(t, err)

	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, 500, card.Layers)
	assert.Equal(t, 82, card.Minutes)
	assert.Equal(t, 3.0, card.Cost)
	assert.Equal(t, "$3.00", r.FormatCost(card.Cost))
}

func TestSetScaleIsNotCumulative(t *testing.T) {
	r, sync := newTestRegistry(t)
	id, err := r.Import("box.stl", boxModel(40, 20, 10))
	require.NoError(t, err)

	for _, percent := range []float64{50, 200, 73, 50} {
		require.NoError(t, r.SetScale(id, percent))
	}

	e, err := r.Get(id)
	require.NoError(t, err)
	expected := geometry.Extents{Length: 20, Width: 10, Height: 5}
	assert.Equal(t, expected, e.Dimensions())

	size, err := e.Mesh.Extents()
	require.NoError(t, err)
	assert.InDelta(t, expected.Length, size.Length, 0.01)
	assert.InDelta(t, expected.Width, size.Width, 0.01)
	assert.InDelta(t, expected.Height, size.Height, 0.01)

	assert.Equal(t, 2.5, e.Position.Z)
	assert.Equal(t, geometry.Extents{Length: 40, Width: 20, Height: 10}, e.Original)
	assert.Equal(t, "reshaped", sync.last().kind)
}

func TestSetScaleReestimates(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("cube.stl", capsModel(100))
	require.NoError(t, err)

	require.NoError(t, r.SetScale(id, 50))
	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, 250, card.Layers)
	assert.Less(t, card.Minutes, 82)
	assert.Equal(t, 50.0, card.Scale)
}

func TestSetScaleClampsNonPositive(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("cube.stl", capsModel(10))
	require.NoError(t, err)

	for _, percent := range []float64{0, -25} {
		require.NoError(t, r.SetScale(id, percent))
		e, err := r.Get(id)
		require.NoError(t, err)
		assert.Equal(t, MinScalePercent, e.Scale)
		assert.Greater(t, e.Dimensions().Height, 0.0)
		for _, tri := range e.Mesh.Triangles {
			assert.False(t, math.IsNaN(tri.V1.X))
		}
	}

	require.NoError(t, r.SetScale(id, 100))
	e, err := r.Get(id)
	require.NoError(t, err)
	size, err := e.Mesh.Extents()
	require.NoError(t, err)
	assert.InDelta(t, 10, size.Height, 0.01)
}

func TestSetPositionClampsToPlate(t *testing.T) {
	r, sync := newTestRegistry(t)
	id, err := r.Import("cube.stl", capsModel(100))
	require.NoError(t, err)

	pos, err := r.SetPosition(id, 1000, -1000)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(40, -40, 50), pos)
	assert.Equal(t, "transformed", sync.last().kind)
	assert.Equal(t, pos, sync.last().entry.Position)

	pos, err = r.MoveBy(id, -10, 5)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(30, -35, 50), pos)
}

func TestSetPositionOversizedModel(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("wide.stl", boxModel(200, 20, 10))
	require.NoError(t, err)

	pos, err := r.SetPosition(id, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.X)
	assert.Equal(t, 30.0, pos.Y)

	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, [3]bool{true, false, false}, card.Oversize)
	assert.False(t, card.Fits())
}

func TestSetColor(t *testing.T) {
	r, sync := newTestRegistry(t)
	id, err := r.Import("cube.stl", capsModel(10))
	require.NoError(t, err)

	require.NoError(t, r.SetColor(id, "green"))
	assert.Equal(t, "recolored", sync.last().kind)
	assert.Equal(t, "green", sync.last().entry.Color)

	err = r.SetColor(id, "chartreuse")
	assert.ErrorIs(t, err, ErrUnknownColor)

	card, err := r.Card(id)
	require.NoError(t, err)
	assert.Equal(t, "green", card.Color)
}

func TestRemove(t *testing.T) {
	r, sync := newTestRegistry(t)
	first, err := r.Import("a.stl", capsModel(10))
	require.NoError(t, err)
	second, err := r.Import("b.stl", capsModel(20))
	require.NoError(t, err)

	require.NoError(t, r.Remove(first))
	assert.Equal(t, call{kind: "removed", id: first, proxy: "proxy-a.stl"}, sync.last())

	assert.ErrorIs(t, r.SetScale(first, 50), ErrUnknownModel)
	_, err = r.SetPosition(first, 0, 0)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.ErrorIs(t, r.SetColor(first, "red"), ErrUnknownModel)
	assert.ErrorIs(t, r.Remove(first), ErrUnknownModel)
	_, err = r.Get(first)
	assert.ErrorIs(t, err, ErrUnknownModel)

	third, err := r.Import("c.stl", capsModel(5))
	require.NoError(t, err)
	assert.Equal(t, 3, third)
	assert.Equal(t, []int{second, third}, r.IDs())
}

func TestUnknownModel(t *testing.T) {
	r, _ := newTestRegistry(t)

	assert.ErrorIs(t, r.SetScale(42, 50), ErrUnknownModel)
	_, err := r.MoveBy(42, 1, 1)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.ErrorIs(t, r.Reload(42, capsModel(1)), ErrUnknownModel)
	_, err = r.Card(42)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestEntriesAreCopies(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("a.stl", capsModel(10))
	require.NoError(t, err)
	_, err = r.Import("b.stl", capsModel(20))
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.stl", entries[0].Name)
	assert.Equal(t, "b.stl", entries[1].Name)

	entries[0].Mesh.Translate(v(100, 0, 0))
	entries[0].Color = "changed"

	e, err := r.Get(id)
	require.NoError(t, err)
	assert.InDelta(t, 0, e.Mesh.BoundingBox().Center().Length(), 1e-9)
	assert.NotEqual(t, "changed", e.Color)
}

func TestEntriesMatchCards(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, edge := range []float64{10, 20, 30} {
		_, err := r.Import("part.stl", capsModel(edge))
		require.NoError(t, err)
	}

	entries, cards := r.Entries(), r.Cards()
	require.Len(t, entries, len(cards))
	for i := range cards {
		assert.Equal(t, cards[i].ID, entries[i].ID)
	}
}

func TestCloneEntryIsIndependent(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("a.stl", capsModel(10))
	require.NoError(t, err)
	original := r.entries[id]

	c := cloneEntry(original)
	assert.Equal(t, original.ID, c.ID)
	assert.Equal(t, original.Estimate.Layers, c.Estimate.Layers)
	require.NotNil(t, c.Estimate.LayerArea)

	c.Mesh.Translate(v(100, 0, 0))
	c.Estimate.LayerArea[0] = -1

	assert.InDelta(t, 0, original.Mesh.BoundingBox().Center().Length(), 1e-9)
	assert.NotEqual(t, -1.0, original.Estimate.LayerArea[0])
}

func TestReloadKeepsTransform(t *testing.T) {
	r, sync := newTestRegistry(t)
	id, err := r.Import("part.stl", boxModel(40, 40, 10))
	require.NoError(t, err)
	require.NoError(t, r.SetScale(id, 50))
	require.NoError(t, r.SetColor(id, "blue"))
	_, err = r.SetPosition(id, 70, 0)
	require.NoError(t, err)

	require.NoError(t, r.Reload(id, boxModel(80, 20, 20)))
	assert.Equal(t, "reshaped", sync.last().kind)

	e, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 50.0, e.Scale)
	assert.Equal(t, "blue", e.Color)
	assert.Equal(t, geometry.Extents{Length: 80, Width: 20, Height: 20}, e.Original)
	assert.Equal(t, geometry.Extents{Length: 40, Width: 10, Height: 10}, e.Dimensions())
	assert.Equal(t, geometry.NewVector3(70, 0, 5), e.Position)

	assert.ErrorIs(t, r.Reload(id, stl.NewModel("empty")), geometry.ErrEmptyMesh)
}

func TestReloadReclampsPosition(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Import("part.stl", boxModel(20, 20, 10))
	require.NoError(t, err)
	_, err = r.SetPosition(id, 80, 0)
	require.NoError(t, err)

	require.NoError(t, r.Reload(id, boxModel(100, 20, 10)))
	e, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 40.0, e.Position.X)
}

func TestTotals(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Import("a.stl", capsModel(100))
	require.NoError(t, err)
	_, err = r.Import("b.stl", capsModel(100))
	require.NoError(t, err)

	totals := r.Totals()
	assert.Equal(t, 2, totals.Models)
	assert.Equal(t, 164, totals.Minutes)
	assert.Equal(t, 6.0, totals.Cost)
}
