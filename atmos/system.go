package atmos

import (
	"github.com/google/uuid"

	"driftstation/server/logging"
)

// System maintains the metadata graph for one subgrid: the node arena, the
// room classification, and the boundary registry. All graph mutation happens
// on the simulation goroutine; only the boundary registry tolerates
// concurrent access.
type System struct {
	grid     uuid.UUID
	layer    *Layer
	tiles    TileOracle
	doors    DoorLookup
	locator  Locator
	boundary *BoundaryRegistry
	pub      logging.Publisher

	// roomCounter is owned by this system so concurrent sweeps of
	// different subgrids never race on room identity.
	roomCounter int
}

// NewSystem builds an unswept system for one subgrid. Call FullSweep once
// before steady-state ticking.
func NewSystem(grid uuid.UUID, tiles TileOracle, doors DoorLookup, locator Locator, pub logging.Publisher) *System {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &System{
		grid:     grid,
		layer:    NewLayer(grid, tiles.Bounds()),
		tiles:    tiles,
		doors:    doors,
		locator:  locator,
		boundary: NewBoundaryRegistry(),
		pub:      pub,
	}
}

func (s *System) Grid() uuid.UUID { return s.grid }

func (s *System) Layer() *Layer { return s.layer }

func (s *System) Boundary() *BoundaryRegistry { return s.boundary }

// RoomCount reports how many room identities have been assigned so far.
func (s *System) RoomCount() int { return s.roomCounter }

// Node returns the node at a local position, creating it if needed.
func (s *System) Node(p Vec3) *Node {
	return s.layer.Get(p)
}

// Resolve follows a tagged reference, possibly into another subgrid's
// arena. A reference into a destroyed or rebuilt subgrid resolves to
// (nil, false).
func (s *System) Resolve(ref NodeRef) (*Node, bool) {
	if ref.Grid == s.grid {
		return s.layer.ByIndex(ref.Index)
	}
	other, ok := s.locator.SystemFor(ref.Grid)
	if !ok {
		return nil, false
	}
	return other.layer.ByIndex(ref.Index)
}

// Tick forwards every boundary node's position to the stepper. Read-only
// over the registry; each tick's iteration is independent.
func (s *System) Tick(st Stepper) int {
	if st == nil {
		return 0
	}
	stepped := 0
	s.boundary.Each(func(_ NodeRef, pos Vec3) {
		st.OnBoundaryCell(s.grid, pos)
		stepped++
	})
	return stepped
}

// CrossGridEdges counts edges that leave this subgrid's arena.
func (s *System) CrossGridEdges() int {
	count := 0
	s.layer.Each(func(n *Node) {
		for _, ref := range n.Neighbors() {
			if ref.Grid != s.grid {
				count++
			}
		}
	})
	return count
}
