package atmos

import "github.com/google/uuid"

// TileOracle answers passability questions for one subgrid's tiles. The
// oracle must treat coordinates outside the subgrid's bounds as exterior
// space with no passable edge leading to them, so the graph never extends
// past the declared arena.
type TileOracle interface {
	// IsPassable reports whether the simulated medium can occupy the cell.
	IsPassable(p Vec3) bool
	// IsEdgePassable reports whether the medium can flow from one cell
	// into the other, accounting for doors and directional blockers.
	IsEdgePassable(from, to Vec3) bool
	// IsExteriorSpace reports whether the cell is open exterior space at
	// the tile level.
	IsExteriorSpace(p Vec3) bool
	// Bounds declares the coordinate region the oracle answers for.
	Bounds() Bounds
}

// DoorLookup answers whether a door actor occupies a cell in closed state.
type DoorLookup interface {
	ClosedDoorAt(p Vec3) bool
}

// Locator is the coordinate transform and subgrid resolution service. A
// failed resolution (no subgrid at a global coordinate, no system for an
// identity) is a legitimate outcome, never an error: the coordinate is in
// true open space or the subgrid has since been destroyed.
type Locator interface {
	LocalToGlobal(grid uuid.UUID, local Vec3) Vec3
	GlobalToLocal(global Vec3, grid uuid.UUID) Vec3
	// SubgridAt resolves which subgrid, if any, occupies a global
	// coordinate with structure.
	SubgridAt(global Vec3) (uuid.UUID, bool)
	// IsGlobalExteriorSpace reports whether a global coordinate is true
	// open space at the world level.
	IsGlobalExteriorSpace(global Vec3) bool
	// SystemFor resolves a subgrid identity to its atmospherics system.
	SystemFor(grid uuid.UUID) (*System, bool)
}

// Stepper consumes boundary cells once per tick. The gas math behind it is
// not part of this package.
type Stepper interface {
	OnBoundaryCell(grid uuid.UUID, p Vec3)
}

// StepperFunc adapts a function to the Stepper interface.
type StepperFunc func(grid uuid.UUID, p Vec3)

func (f StepperFunc) OnBoundaryCell(grid uuid.UUID, p Vec3) {
	if f == nil {
		return
	}
	f(grid, p)
}
