package atmos

import (
	"context"
	"time"

	"github.com/zyedidia/generic/mapset"

	loggingatmos "driftstation/server/logging/atmos"
)

// FullSweep classifies every cell of the subgrid exactly once and builds
// the initial adjacency graph. It runs synchronously before steady-state
// ticking and is not safe to invoke concurrently against the same system.
func (s *System) FullSweep(tick uint64) {
	started := time.Now()
	bounds := s.tiles.Bounds()

	for z := bounds.Min.Z; z < bounds.Max.Z; z++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				p := Vec3{X: x, Y: y, Z: z}

				if !s.tiles.IsPassable(p) {
					// Occupied cells still get edges so a later
					// door transition can find its neighbourhood.
					n := s.layer.Get(p)
					n.Type = TypeOccupied
					if s.doors.ClosedDoorAt(p) {
						n.IsClosedAirlock = true
					}
					s.buildAdjacency(n)
					continue
				}

				// A previous fill, or adjacency construction of an
				// earlier occupied cell, may already have classified
				// this cell.
				if n, ok := s.layer.At(p); ok && (n.Type == TypeRoom || n.Type == TypeSpace) {
					continue
				}

				s.floodFill(p)
			}
		}
	}

	spaceNodes, boundary := 0, s.boundary.Len()
	s.layer.Each(func(n *Node) {
		if n.Type == TypeSpace {
			spaceNodes++
		}
	})
	loggingatmos.SubgridClassified(context.Background(), s.pub, tick, loggingatmos.SubgridClassifiedPayload{
		Subgrid:        s.grid.String(),
		Rooms:          s.roomCounter,
		SpaceNodes:     spaceNodes,
		BoundaryNodes:  boundary,
		DurationMillis: time.Since(started).Milliseconds(),
	})
}

// floodFill discovers the maximal connected region reachable from origin
// without crossing exterior space, then classifies the whole region at
// once. Region membership is independent of visit order; the room counter
// advances once per completed room region only.
func (s *System) floodFill(origin Vec3) {
	visited := mapset.New[Vec3]()
	visited.Put(origin)
	queue := []Vec3{origin}
	region := make([]Vec3, 0, 16)
	isSpace := false

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		for _, off := range neighborOffsets {
			np := p.Add(off)

			if s.tiles.IsExteriorSpace(np) {
				// The tile map says space; only true world-level
				// exterior marks the region, since another subgrid
				// may occupy that global coordinate.
				g := s.locator.LocalToGlobal(s.grid, np)
				if s.locator.IsGlobalExteriorSpace(g) {
					isSpace = true
				}
				continue
			}

			if !s.tiles.IsEdgePassable(p, np) || visited.Has(np) {
				continue
			}
			if n, ok := s.layer.At(np); ok && n.Type == TypeRoom {
				continue
			}
			visited.Put(np)
			queue = append(queue, np)
		}
	}

	for _, p := range region {
		n := s.layer.Get(p)
		if isSpace {
			n.Type = TypeSpace
			n.RoomNumber = -1
		} else {
			n.Type = TypeRoom
			n.RoomNumber = s.roomCounter
		}
	}
	if !isSpace {
		s.roomCounter++
	}

	for _, p := range region {
		s.buildAdjacency(s.layer.Get(p))
	}
}
