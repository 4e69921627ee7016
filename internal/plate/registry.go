// Package plate manages the models placed on the build plate and keeps
// their estimates current.
//
// A Registry is not safe for concurrent use. All operations are expected
// to run on one goroutine, typically the UI loop; STL decoding can happen
// elsewhere (see LoadFiles) with the results imported on the owning
// goroutine.
package plate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jinzhu/copier"
	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/pkg/estimate"
	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/placement"
	"github.com/philipparndt/printplate/pkg/stl"
)

var (
	// ErrUnknownModel is returned for ids that were never assigned or were removed
	ErrUnknownModel = errors.New("unknown model")
	// ErrUnknownColor is returned for colour names outside the palette
	ErrUnknownColor = errors.New("unknown colour")
)

// MinScalePercent replaces zero or negative scale requests
const MinScalePercent = 0.0001

// Entry is one imported model
type Entry struct {
	ID       int
	Name     string
	Original geometry.Extents // size after centering at import, never changes
	Scale    float64          // percent of Original
	Position geometry.Vector3 // centre of the bounding box; Z keeps the base on the plate
	Color    string
	Mesh     *stl.Model // current, scaled geometry centred on the origin
	Estimate estimate.Result
	Cost     float64
}

// Dimensions returns the current size: the original extents at the current scale
func (e Entry) Dimensions() geometry.Extents {
	return e.Original.Scaled(e.Scale)
}

// Option configures a Registry
type Option func(*Registry)

// WithSync sets the view collaborator notified after each mutation
func WithSync(s Sync) Option {
	return func(r *Registry) {
		r.sync = s
	}
}

// WithRand sets the random source used to pick colours for new models
func WithRand(rnd *rand.Rand) Option {
	return func(r *Registry) {
		r.rand = rnd
	}
}

// Registry is the authoritative collection of models on the plate
type Registry struct {
	cfg      config.Config
	settings estimate.Settings
	policy   placement.Policy
	sync     Sync
	rand     *rand.Rand

	entries map[int]*Entry
	proxies map[int]Proxy
	order   []int
	nextID  int
}

// New creates an empty registry for the given configuration
func New(cfg config.Config, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := uint64(time.Now().UnixNano())
	r := &Registry{
		cfg:      cfg,
		settings: cfg.Estimator(),
		policy:   cfg.Placement(),
		sync:     NopSync{},
		rand:     rand.New(rand.NewPCG(now, now>>32)),
		entries:  make(map[int]*Entry),
		proxies:  make(map[int]Proxy),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sync == nil {
		r.sync = NopSync{}
	}
	return r, nil
}

// Config returns the configuration the registry was created with
func (r *Registry) Config() config.Config {
	return r.cfg
}

// SetSync replaces the view collaborator. Existing proxies are kept.
func (r *Registry) SetSync(s Sync) {
	if s == nil {
		s = NopSync{}
	}
	r.sync = s
}

// Import adds a model to the plate and returns its id. The registry takes
// ownership of model: it is centred and later rescaled in place.
func (r *Registry) Import(name string, model *stl.Model) (int, error) {
	if model == nil || model.TriangleCount() == 0 {
		return 0, fmt.Errorf("failed to import %s: %w", name, geometry.ErrEmptyMesh)
	}

	if _, err := model.Extents(); err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", name, err)
	}
	model.Center()
	original, err := model.Extents()
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", name, err)
	}

	color := r.cfg.DefaultColor
	if color == "" {
		color = r.cfg.Palette.Random(r.rand)
	}

	e := &Entry{
		ID:       r.nextID,
		Name:     name,
		Original: original,
		Scale:    100,
		Position: geometry.NewVector3(0, 0, original.Height/2),
		Color:    color,
		Mesh:     model,
	}
	r.nextID++
	r.reestimate(e)

	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	r.proxies[e.ID] = r.sync.Added(*e)

	return e.ID, nil
}

// SetScale resizes a model to percent of its original extents. Each call is
// relative to the original size, so repeated calls do not compound.
// Percentages <= 0 are replaced by MinScalePercent.
func (r *Registry) SetScale(id int, percent float64) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	if percent <= 0 {
		percent = MinScalePercent
	}

	target := e.Original.Scaled(percent)
	e.Mesh.ScaleTo(target)
	e.Scale = percent
	e.Position.Z = target.Height / 2
	r.reestimate(e)

	r.sync.Reshaped(*e, r.proxies[id])
	return nil
}

// SetPosition moves a model to (x, y), clamped so its footprint stays on
// the plate, and returns the stored position.
func (r *Registry) SetPosition(id int, x, y float64) (geometry.Vector3, error) {
	e, err := r.lookup(id)
	if err != nil {
		return geometry.Vector3{}, err
	}

	dims := e.Dimensions()
	x, y = r.policy.ClampExtents(x, y, dims)
	e.Position = geometry.NewVector3(x, y, dims.Height/2)

	r.sync.Transformed(*e, r.proxies[id])
	return e.Position, nil
}

// MoveBy applies a drag delta to a model's position
func (r *Registry) MoveBy(id int, dx, dy float64) (geometry.Vector3, error) {
	e, err := r.lookup(id)
	if err != nil {
		return geometry.Vector3{}, err
	}
	return r.SetPosition(id, e.Position.X+dx, e.Position.Y+dy)
}

// SetColor changes a model's colour. Names outside the palette are rejected
// and the previous colour is kept.
func (r *Registry) SetColor(id int, name string) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	if !r.cfg.Palette.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}

	e.Color = name
	r.sync.Recolored(*e, r.proxies[id])
	return nil
}

// Remove deletes a model. Its id is never reused.
func (r *Registry) Remove(id int) error {
	if _, err := r.lookup(id); err != nil {
		return err
	}

	proxy := r.proxies[id]
	delete(r.entries, id)
	delete(r.proxies, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.sync.Removed(id, proxy)
	return nil
}

// Reload replaces the geometry of a model, for example after its file
// changed on disk. Id, colour, scale and horizontal position are kept; the
// original extents are measured again.
func (r *Registry) Reload(id int, model *stl.Model) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	if model == nil || model.TriangleCount() == 0 {
		return fmt.Errorf("failed to reload model %d: %w", id, geometry.ErrEmptyMesh)
	}

	if _, err := model.Extents(); err != nil {
		return fmt.Errorf("failed to reload model %d: %w", id, err)
	}
	model.Center()
	original, err := model.Extents()
	if err != nil {
		return fmt.Errorf("failed to reload model %d: %w", id, err)
	}

	e.Original = original
	e.Mesh = model
	if e.Scale != 100 {
		e.Mesh.ScaleTo(e.Dimensions())
	}
	dims := e.Dimensions()
	x, y := r.policy.ClampExtents(e.Position.X, e.Position.Y, dims)
	e.Position = geometry.NewVector3(x, y, dims.Height/2)
	r.reestimate(e)

	r.sync.Reshaped(*e, r.proxies[id])
	return nil
}

// Get returns a copy of one entry
func (r *Registry) Get(id int) (Entry, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Entry{}, err
	}
	return snapshot(e), nil
}

// Entries returns copies of all entries in import order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, snapshot(r.entries[id]))
	}
	return out
}

// IDs returns the active ids in import order
func (r *Registry) IDs() []int {
	return append([]int(nil), r.order...)
}

// Len returns the number of active models
func (r *Registry) Len() int {
	return len(r.order)
}

// Proxy returns the view handle stored for a model
func (r *Registry) Proxy(id int) (Proxy, error) {
	if _, err := r.lookup(id); err != nil {
		return nil, err
	}
	return r.proxies[id], nil
}

func (r *Registry) lookup(id int) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("model %d: %w", id, ErrUnknownModel)
	}
	return e, nil
}

// reestimate refreshes the estimate from the current mesh, using the
// displayed height for the layer count.
func (r *Registry) reestimate(e *Entry) {
	e.Estimate = r.settings.EstimateForHeight(e.Mesh.Triangles, e.Dimensions().Height)
	e.Cost = estimate.Cost(e.Estimate.Minutes, r.cfg.HourlyRate)
}

// snapshot deep-copies an entry. copier only fails on field kinds Entry
// does not have; should it fail anyway, the copy is made by hand so callers
// always see every model.
func snapshot(e *Entry) Entry {
	var out Entry
	if err := copier.CopyWithOption(&out, e, copier.Option{DeepCopy: true}); err != nil {
		return cloneEntry(e)
	}
	return out
}

// cloneEntry copies an entry without reflection
func cloneEntry(e *Entry) Entry {
	out := *e
	if e.Mesh != nil {
		out.Mesh = e.Mesh.Clone()
	}
	if e.Estimate.LayerArea != nil {
		out.Estimate.LayerArea = append([]float64(nil), e.Estimate.LayerArea...)
	}
	return out
}
