package atmos

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// NodeType classifies a cell for the atmospheric simulation.
type NodeType int

const (
	// TypeUndefined marks a node that exists in the layer but has not been
	// classified yet. Adjacency construction may create nodes ahead of the
	// classifier reaching them.
	TypeUndefined NodeType = iota
	// TypeRoom is a passable cell belonging to an enclosed region.
	TypeRoom
	// TypeSpace is a passable cell exposed, directly or transitively, to
	// open exterior space.
	TypeSpace
	// TypeOccupied is a cell the simulated medium cannot enter (walls,
	// closed doors).
	TypeOccupied
)

func (t NodeType) String() string {
	switch t {
	case TypeRoom:
		return "room"
	case TypeSpace:
		return "space"
	case TypeOccupied:
		return "occupied"
	default:
		return "undefined"
	}
}

// Vec3 is an integer cell coordinate, local to a subgrid unless stated
// otherwise.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// neighborOffsets enumerates the four cardinal directions the simulated
// medium can flow in. Diagonal flow is not modelled.
var neighborOffsets = [...]Vec3{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Bounds is a half-open box over local coordinates: Min inclusive, Max
// exclusive.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}

func (b Bounds) Width() int  { return b.Max.X - b.Min.X }
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y }
func (b Bounds) Depth() int  { return b.Max.Z - b.Min.Z }

// NodeRef is a tagged reference to a node, valid across subgrids. A rebuilt
// subgrid carries a fresh identity, so references into a destroyed layer
// resolve as no longer valid instead of aliasing a new node.
type NodeRef struct {
	Grid  uuid.UUID
	Index int32
}

// Node is the per-cell metadata record. Position is immutable after
// creation; everything else mutates on (re)classification. Nodes are owned
// by their layer and must only be mutated from the simulation goroutine.
type Node struct {
	Position        Vec3
	Type            NodeType
	RoomNumber      int
	IsClosedAirlock bool

	neighbors mapset.Set[NodeRef]
}

func newNode(pos Vec3) *Node {
	return &Node{
		Position:   pos,
		RoomNumber: -1,
		neighbors:  mapset.New[NodeRef](),
	}
}

// NeighborCount reports how many edges the node currently holds.
func (n *Node) NeighborCount() int {
	return n.neighbors.Size()
}

// HasNeighbor reports whether ref is currently listed as an edge.
func (n *Node) HasNeighbor(ref NodeRef) bool {
	return n.neighbors.Has(ref)
}

// Neighbors returns a copy of the node's edge set. Order is unspecified.
func (n *Node) Neighbors() []NodeRef {
	refs := make([]NodeRef, 0, n.neighbors.Size())
	n.neighbors.Each(func(ref NodeRef) {
		refs = append(refs, ref)
	})
	return refs
}

func (n *Node) addNeighbor(ref NodeRef) {
	n.neighbors.Put(ref)
}

func (n *Node) removeNeighbor(ref NodeRef) {
	n.neighbors.Remove(ref)
}

func (n *Node) clearNeighbors() {
	n.neighbors = mapset.New[NodeRef]()
}
