package atmos

// buildAdjacency populates the node's full neighbor set, one direction at a
// time. This is deliberately not a pure read: it can force neighboring
// cells to Space, register boundary membership, and create nodes in a
// different subgrid's arena when stitching across a seam.
func (s *System) buildAdjacency(n *Node) {
	selfRef := s.layer.Ref(n.Position)

	for _, off := range neighborOffsets {
		np := n.Position.Add(off)

		if s.tiles.IsExteriorSpace(np) {
			if n.Type == TypeRoom {
				s.boundary.Put(selfRef, n.Position)
			}
			if n.Type != TypeSpace && s.stitchAcrossSeam(n, selfRef, np) {
				// A cross-subgrid edge takes precedence over the
				// local space neighbor for this direction.
				continue
			}
		}

		if !s.tiles.IsEdgePassable(n.Position, np) {
			continue
		}

		neighbor := s.layer.Get(np)
		if s.tiles.IsExteriorSpace(np) {
			// Space bleeds into adjacent cells without waiting for
			// the flood fill to reach them.
			neighbor.Type = TypeSpace
			neighbor.RoomNumber = -1
		}
		n.addNeighbor(s.layer.Ref(np))
		neighbor.addNeighbor(selfRef)
	}
}

// stitchAcrossSeam attempts to connect n to the subgrid occupying the
// global coordinate behind a tile-level space neighbor. Returns true when a
// cross-subgrid edge was added.
func (s *System) stitchAcrossSeam(n *Node, selfRef NodeRef, np Vec3) bool {
	g := s.locator.LocalToGlobal(s.grid, np)
	if s.locator.IsGlobalExteriorSpace(g) {
		return false
	}

	otherID, ok := s.locator.SubgridAt(g)
	if !ok || otherID == s.grid {
		return false
	}
	other, ok := s.locator.SystemFor(otherID)
	if !ok {
		return false
	}

	selfGlobal := s.locator.LocalToGlobal(s.grid, n.Position)
	from := s.locator.GlobalToLocal(selfGlobal, otherID)
	to := s.locator.GlobalToLocal(g, otherID)
	if !other.tiles.IsEdgePassable(from, to) {
		return false
	}

	foreign := other.layer.Get(to)
	n.addNeighbor(other.layer.Ref(to))
	foreign.addNeighbor(selfRef)
	return true
}
