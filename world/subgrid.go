package world

import (
	"fmt"

	"github.com/google/uuid"

	"driftstation/server/atmos"
)

// TileKind is the structural content of one cell.
type TileKind uint8

const (
	// TileSpace is open exterior space: passable to the medium, owned by
	// nothing.
	TileSpace TileKind = iota
	// TileFloor is enclosed, passable deck plating.
	TileFloor
	// TileWall blocks the medium entirely.
	TileWall
)

// Door is an actor occupying a floor cell. A closed door blocks the medium
// through its cell.
type Door struct {
	Pos    atmos.Vec3
	Closed bool
}

// Subgrid is one independently coordinate-spaced section of the station: a
// tile raster, its door actors, and an integer offset into global space.
// Tiles and doors are only mutated from the simulation goroutine.
type Subgrid struct {
	id     uuid.UUID
	name   string
	offset atmos.Vec3
	bounds atmos.Bounds
	tiles  []TileKind
	doors  map[atmos.Vec3]*Door
}

// NewSubgrid allocates a subgrid filled with space tiles. The identity is
// fresh per construction, so references into an earlier incarnation of the
// same section never alias this one.
func NewSubgrid(name string, offset atmos.Vec3, bounds atmos.Bounds) *Subgrid {
	size := bounds.Width() * bounds.Height() * bounds.Depth()
	if size <= 0 {
		size = 0
	}
	return &Subgrid{
		id:     uuid.New(),
		name:   name,
		offset: offset,
		bounds: bounds,
		tiles:  make([]TileKind, size),
		doors:  make(map[atmos.Vec3]*Door),
	}
}

func (s *Subgrid) ID() uuid.UUID      { return s.id }
func (s *Subgrid) Name() string       { return s.name }
func (s *Subgrid) Offset() atmos.Vec3 { return s.offset }

func (s *Subgrid) index(p atmos.Vec3) int {
	if !s.bounds.Contains(p) {
		panic(fmt.Sprintf("world: position %v outside subgrid %q bounds", p, s.name))
	}
	rel := p.Sub(s.bounds.Min)
	return (rel.Z*s.bounds.Height()+rel.Y)*s.bounds.Width() + rel.X
}

// Tile returns the tile at p; anything outside the bounds reads as space.
func (s *Subgrid) Tile(p atmos.Vec3) TileKind {
	if !s.bounds.Contains(p) {
		return TileSpace
	}
	return s.tiles[s.index(p)]
}

// SetTile replaces the tile at p. Panics outside the bounds.
func (s *Subgrid) SetTile(p atmos.Vec3, kind TileKind) {
	s.tiles[s.index(p)] = kind
}

// AddDoor places a door actor on a floor cell.
func (s *Subgrid) AddDoor(p atmos.Vec3, closed bool) *Door {
	s.SetTile(p, TileFloor)
	door := &Door{Pos: p, Closed: closed}
	s.doors[p] = door
	return door
}

// Door returns the door actor at p, if any.
func (s *Subgrid) Door(p atmos.Vec3) (*Door, bool) {
	door, ok := s.doors[p]
	return door, ok
}

// SetDoorClosed toggles a door's state. Returns false when no door occupies
// the cell.
func (s *Subgrid) SetDoorClosed(p atmos.Vec3, closed bool) bool {
	door, ok := s.doors[p]
	if !ok {
		return false
	}
	door.Closed = closed
	return true
}

// Bounds implements atmos.TileOracle.
func (s *Subgrid) Bounds() atmos.Bounds { return s.bounds }

// IsPassable implements atmos.TileOracle: the medium occupies space and
// floor cells, but not walls or cells sealed by a closed door.
func (s *Subgrid) IsPassable(p atmos.Vec3) bool {
	if !s.bounds.Contains(p) {
		return false
	}
	if s.tiles[s.index(p)] == TileWall {
		return false
	}
	if door, ok := s.doors[p]; ok && door.Closed {
		return false
	}
	return true
}

// IsEdgePassable implements atmos.TileOracle. Flow out of a cell is gated
// by the destination only; from is kept for directional blockers.
func (s *Subgrid) IsEdgePassable(from, to atmos.Vec3) bool {
	_ = from
	return s.bounds.Contains(to) && s.IsPassable(to)
}

// IsExteriorSpace implements atmos.TileOracle: everything beyond the bounds
// is exterior, as is any space tile inside them.
func (s *Subgrid) IsExteriorSpace(p atmos.Vec3) bool {
	if !s.bounds.Contains(p) {
		return true
	}
	return s.tiles[s.index(p)] == TileSpace
}

// ClosedDoorAt implements atmos.DoorLookup.
func (s *Subgrid) ClosedDoorAt(p atmos.Vec3) bool {
	door, ok := s.doors[p]
	return ok && door.Closed
}
