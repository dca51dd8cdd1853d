package atmos

import (
	"context"

	loggingatmos "driftstation/server/logging/atmos"
)

// UpdateAt re-evaluates exactly one node after its underlying tile changed
// (a door toggled, a wall was breached). It undoes the node's graph
// membership, reclassifies the cell against the current tile state, and
// rebuilds only this node's edges. Flood fill is never re-run here, so a
// structural change that should merge or split rooms leaves room numbers
// untouched; callers relying on room membership after such a change must
// trigger a fresh sweep themselves.
func (s *System) UpdateAt(tick uint64, p Vec3) {
	n := s.layer.Get(p)
	selfRef := s.layer.Ref(p)

	// Undirected cleanup: edges are built per node and may be asymmetric,
	// so walk every listed neighbor and prune the reverse edge explicitly.
	for _, ref := range n.Neighbors() {
		if other, ok := s.Resolve(ref); ok {
			other.removeNeighbor(selfRef)
		}
	}
	s.boundary.Remove(selfRef)
	n.clearNeighbors()

	if s.tiles.IsPassable(p) {
		n.IsClosedAirlock = false
		if s.tiles.IsExteriorSpace(p) {
			n.Type = TypeSpace
			n.RoomNumber = -1
		} else {
			n.Type = TypeRoom
		}
		s.buildAdjacency(n)
	} else {
		n.Type = TypeOccupied
		n.IsClosedAirlock = s.doors.ClosedDoorAt(p)
	}

	loggingatmos.CellUpdated(context.Background(), s.pub, tick, loggingatmos.CellUpdatedPayload{
		Subgrid:         s.grid.String(),
		X:               p.X,
		Y:               p.Y,
		Z:               p.Z,
		Type:            n.Type.String(),
		RoomNumber:      n.RoomNumber,
		IsClosedAirlock: n.IsClosedAirlock,
		Neighbors:       n.NeighborCount(),
		Boundary:        s.boundary.Has(selfRef),
	})
}
