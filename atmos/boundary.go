package atmos

import (
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// BoundaryRegistry is the concurrent set of nodes directly exposed to open
// space. The incremental update path inserts and removes entries from event
// dispatch while the tick path iterates, so access is synchronised here and
// nowhere else in the graph. Iteration works over a snapshot: entries added
// or removed mid-tick may or may not be observed, which is acceptable per
// the tick contract.
type BoundaryRegistry struct {
	mu        sync.RWMutex
	refs      mapset.Set[NodeRef]
	positions map[NodeRef]Vec3
}

func NewBoundaryRegistry() *BoundaryRegistry {
	return &BoundaryRegistry{
		refs:      mapset.New[NodeRef](),
		positions: make(map[NodeRef]Vec3),
	}
}

// Put registers a boundary node. Re-registering an existing entry is a
// no-op, keeping the registry identity-keyed.
func (r *BoundaryRegistry) Put(ref NodeRef, pos Vec3) {
	r.mu.Lock()
	r.refs.Put(ref)
	r.positions[ref] = pos
	r.mu.Unlock()
}

// Remove drops a node from the registry if present.
func (r *BoundaryRegistry) Remove(ref NodeRef) {
	r.mu.Lock()
	r.refs.Remove(ref)
	delete(r.positions, ref)
	r.mu.Unlock()
}

// Has reports current membership.
func (r *BoundaryRegistry) Has(ref NodeRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refs.Has(ref)
}

// Len reports the current entry count.
func (r *BoundaryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refs.Size()
}

// Each invokes fn for every registered node. The snapshot is taken under
// the read lock and fn runs outside it, so callbacks never block writers.
func (r *BoundaryRegistry) Each(fn func(ref NodeRef, pos Vec3)) {
	r.mu.RLock()
	snapshot := make(map[NodeRef]Vec3, len(r.positions))
	for ref, pos := range r.positions {
		snapshot[ref] = pos
	}
	r.mu.RUnlock()

	for ref, pos := range snapshot {
		fn(ref, pos)
	}
}
