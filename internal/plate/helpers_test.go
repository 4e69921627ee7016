package plate

import (
	"math/rand/v2"
	"testing"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/stl"
	"github.com/stretchr/testify/require"
)

type call struct {
	kind  string
	id    int
	proxy Proxy
	entry Entry
}

// recordingSync records every notification and hands out string proxies
type recordingSync struct {
	calls []call
}

func (s *recordingSync) Added(e Entry) Proxy {
	p := "proxy-" + e.Name
	s.calls = append(s.calls, call{kind: "added", id: e.ID, proxy: p, entry: e})
	return p
}

func (s *recordingSync) Transformed(e Entry, p Proxy) {
	s.calls = append(s.calls, call{kind: "transformed", id: e.ID, proxy: p, entry: e})
}

func (s *recordingSync) Reshaped(e Entry, p Proxy) {
	s.calls = append(s.calls, call{kind: "reshaped", id: e.ID, proxy: p, entry: e})
}

func (s *recordingSync) Recolored(e Entry, p Proxy) {
	s.calls = append(s.calls, call{kind: "recolored", id: e.ID, proxy: p, entry: e})
}

func (s *recordingSync) Removed(id int, p Proxy) {
	s.calls = append(s.calls, call{kind: "removed", id: id, proxy: p})
}

func (s *recordingSync) last() call {
	return s.calls[len(s.calls)-1]
}

func newTestRegistry(t *testing.T) (*Registry, *recordingSync) {
	t.Helper()
	sync := &recordingSync{}
	r, err := New(config.Default(), WithSync(sync), WithRand(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, err)
	return r, sync
}

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

// capsModel returns the top and bottom faces of a cube with the given edge,
// placed away from the origin so that import has to centre it.
func capsModel(edge float64) *stl.Model {
	m := stl.NewModel("caps")
	o := 7.0
	m.AddTriangle(geometry.NewTriangle(v(o, o, o), v(o+edge, o, o), v(o+edge, o+edge, o)))
	m.AddTriangle(geometry.NewTriangle(v(o, o, o), v(o+edge, o+edge, o), v(o, o+edge, o)))
	m.AddTriangle(geometry.NewTriangle(v(o, o, o+edge), v(o+edge, o, o+edge), v(o+edge, o+edge, o+edge)))
	m.AddTriangle(geometry.NewTriangle(v(o, o, o+edge), v(o+edge, o+edge, o+edge), v(o, o+edge, o+edge)))
	return m
}

// boxModel returns the two caps of an l x w x h box
func boxModel(l, w, h float64) *stl.Model {
	m := stl.NewModel("box")
	m.AddTriangle(geometry.NewTriangle(v(0, 0, 0), v(l, 0, 0), v(l, w, 0)))
	m.AddTriangle(geometry.NewTriangle(v(0, 0, 0), v(l, w, 0), v(0, w, 0)))
	m.AddTriangle(geometry.NewTriangle(v(0, 0, h), v(l, 0, h), v(l, w, h)))
	m.AddTriangle(geometry.NewTriangle(v(0, 0, h), v(l, w, h), v(0, w, h)))
	return m
}
