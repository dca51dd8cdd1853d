package world

import (
	"fmt"

	"github.com/google/uuid"

	"driftstation/server/atmos"
	"driftstation/server/logging"
)

// World owns the subgrid set and their atmospherics systems, and acts as
// the coordinate transform service between their local spaces. Subgrid
// registration and removal happen on the simulation goroutine.
type World struct {
	pub      logging.Publisher
	order    []uuid.UUID
	subgrids map[uuid.UUID]*Subgrid
	systems  map[uuid.UUID]*atmos.System
}

func NewWorld(pub logging.Publisher) *World {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &World{
		pub:      pub,
		subgrids: make(map[uuid.UUID]*Subgrid),
		systems:  make(map[uuid.UUID]*atmos.System),
	}
}

// AddSubgrid registers a subgrid and creates its unswept atmospherics
// system.
func (w *World) AddSubgrid(sub *Subgrid) *atmos.System {
	sys := atmos.NewSystem(sub.ID(), sub, sub, w, w.pub)
	w.subgrids[sub.ID()] = sub
	w.systems[sub.ID()] = sys
	w.order = append(w.order, sub.ID())
	return sys
}

// RemoveSubgrid drops a subgrid and its system. Cross-subgrid references
// held elsewhere resolve as no longer valid afterwards.
func (w *World) RemoveSubgrid(id uuid.UUID) {
	delete(w.subgrids, id)
	delete(w.systems, id)
	for i, ord := range w.order {
		if ord == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// BuildAtmos runs the initial classification sweep over every subgrid in
// registration order.
func (w *World) BuildAtmos(tick uint64) {
	for _, id := range w.order {
		w.systems[id].FullSweep(tick)
	}
}

// Subgrid returns a registered subgrid by identity.
func (w *World) Subgrid(id uuid.UUID) (*Subgrid, bool) {
	sub, ok := w.subgrids[id]
	return sub, ok
}

// SubgridByName returns a registered subgrid by display name.
func (w *World) SubgridByName(name string) (*Subgrid, bool) {
	for _, id := range w.order {
		if w.subgrids[id].Name() == name {
			return w.subgrids[id], true
		}
	}
	return nil, false
}

// Systems returns the atmospherics systems in registration order.
func (w *World) Systems() []*atmos.System {
	systems := make([]*atmos.System, 0, len(w.order))
	for _, id := range w.order {
		systems = append(systems, w.systems[id])
	}
	return systems
}

// LocalToGlobal implements atmos.Locator.
func (w *World) LocalToGlobal(grid uuid.UUID, local atmos.Vec3) atmos.Vec3 {
	sub, ok := w.subgrids[grid]
	if !ok {
		panic(fmt.Sprintf("world: transform for unknown subgrid %s", grid))
	}
	return local.Add(sub.offset)
}

// GlobalToLocal implements atmos.Locator.
func (w *World) GlobalToLocal(global atmos.Vec3, grid uuid.UUID) atmos.Vec3 {
	sub, ok := w.subgrids[grid]
	if !ok {
		panic(fmt.Sprintf("world: transform for unknown subgrid %s", grid))
	}
	return global.Sub(sub.offset)
}

// SubgridAt implements atmos.Locator: the subgrid, if any, with structure
// at the global coordinate. A miss is a legitimate outcome meaning the
// coordinate sits in true open space.
func (w *World) SubgridAt(global atmos.Vec3) (uuid.UUID, bool) {
	for _, id := range w.order {
		sub := w.subgrids[id]
		local := global.Sub(sub.offset)
		if sub.bounds.Contains(local) && sub.Tile(local) != TileSpace {
			return id, true
		}
	}
	return uuid.Nil, false
}

// IsGlobalExteriorSpace implements atmos.Locator: true unless some subgrid
// has structure at the coordinate.
func (w *World) IsGlobalExteriorSpace(global atmos.Vec3) bool {
	_, ok := w.SubgridAt(global)
	return !ok
}

// SystemFor implements atmos.Locator.
func (w *World) SystemFor(grid uuid.UUID) (*atmos.System, bool) {
	sys, ok := w.systems[grid]
	return sys, ok
}
