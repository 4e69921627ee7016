package plate

// Proxy is the handle a Sync implementation returns for a rendered model.
// The registry stores it and hands it back, it never inspects it.
type Proxy any

// Sync is the view side of the registry. It is notified after every
// successful mutation, from the goroutine that called the registry.
//
// Entries passed to Sync share their mesh with the registry and must be
// treated as read-only.
type Sync interface {
	// Added renders a newly imported model and returns its proxy
	Added(e Entry) Proxy
	// Transformed moves an existing model; the geometry is unchanged
	Transformed(e Entry, p Proxy)
	// Reshaped replaces the rendered geometry after a scale or reload
	Reshaped(e Entry, p Proxy)
	// Recolored applies a new colour
	Recolored(e Entry, p Proxy)
	// Removed releases the proxy of a deleted model
	Removed(id int, p Proxy)
}

// NopSync ignores all notifications
type NopSync struct{}

func (NopSync) Added(Entry) Proxy        { return nil }
func (NopSync) Transformed(Entry, Proxy) {}
func (NopSync) Reshaped(Entry, Proxy)    {}
func (NopSync) Recolored(Entry, Proxy)   {}
func (NopSync) Removed(int, Proxy)       {}
