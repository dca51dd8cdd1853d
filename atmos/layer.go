package atmos

import (
	"fmt"

	"github.com/google/uuid"
)

// Layer is the node arena for one subgrid. Nodes are addressed by a stable
// raster index derived from their local position, which is what NodeRef
// carries; node lifetime equals layer lifetime.
type Layer struct {
	grid   uuid.UUID
	bounds Bounds
	nodes  []*Node
}

// NewLayer allocates an empty arena covering bounds. Nodes are created
// lazily on first access.
func NewLayer(grid uuid.UUID, bounds Bounds) *Layer {
	size := bounds.Width() * bounds.Height() * bounds.Depth()
	if size <= 0 {
		size = 0
	}
	return &Layer{grid: grid, bounds: bounds, nodes: make([]*Node, size)}
}

func (l *Layer) Grid() uuid.UUID { return l.grid }
func (l *Layer) Bounds() Bounds  { return l.bounds }

// index maps a local position to its raster slot. Every position handled by
// the core originates from bounded iteration or the coordinate transform, so
// an out-of-bounds lookup is a programming error, not a recoverable one.
func (l *Layer) index(p Vec3) int32 {
	if !l.bounds.Contains(p) {
		panic(fmt.Sprintf("atmos: position %v outside layer bounds %v..%v", p, l.bounds.Min, l.bounds.Max))
	}
	rel := p.Sub(l.bounds.Min)
	return int32((rel.Z*l.bounds.Height()+rel.Y)*l.bounds.Width() + rel.X)
}

// Get returns the node for p, creating it on first access.
func (l *Layer) Get(p Vec3) *Node {
	idx := l.index(p)
	if l.nodes[idx] == nil {
		l.nodes[idx] = newNode(p)
	}
	return l.nodes[idx]
}

// At returns the node for p without creating one.
func (l *Layer) At(p Vec3) (*Node, bool) {
	n := l.nodes[l.index(p)]
	if n == nil {
		return nil, false
	}
	return n, true
}

// Ref returns the tagged reference for a position in this layer.
func (l *Layer) Ref(p Vec3) NodeRef {
	return NodeRef{Grid: l.grid, Index: l.index(p)}
}

// ByIndex resolves a raster index back to its node. Returns false for slots
// that were never materialised or indices outside the arena.
func (l *Layer) ByIndex(idx int32) (*Node, bool) {
	if idx < 0 || int(idx) >= len(l.nodes) {
		return nil, false
	}
	n := l.nodes[idx]
	if n == nil {
		return nil, false
	}
	return n, true
}

// Each visits every materialised node in raster order.
func (l *Layer) Each(fn func(*Node)) {
	for _, n := range l.nodes {
		if n != nil {
			fn(n)
		}
	}
}
