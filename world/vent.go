package world

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"driftstation/server/atmos"
)

type ventKey struct {
	Grid uuid.UUID
	Pos  atmos.Vec3
}

// VentStepper is the per-node simulation consumer: it records each boundary
// cell's exposure to open space per tick. The actual gas exchange math
// lives behind this interface, not in the metadata core.
type VentStepper struct {
	mu        sync.Mutex
	exposures map[ventKey]uint64
	total     atomic.Uint64
}

func NewVentStepper() *VentStepper {
	return &VentStepper{exposures: make(map[ventKey]uint64)}
}

// OnBoundaryCell implements atmos.Stepper.
func (v *VentStepper) OnBoundaryCell(grid uuid.UUID, p atmos.Vec3) {
	v.mu.Lock()
	v.exposures[ventKey{Grid: grid, Pos: p}]++
	v.mu.Unlock()
	v.total.Add(1)
}

// Exposure reports how many ticks a cell has been exposed for.
func (v *VentStepper) Exposure(grid uuid.UUID, p atmos.Vec3) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.exposures[ventKey{Grid: grid, Pos: p}]
}

// Total reports the total boundary-cell visits across all ticks.
func (v *VentStepper) Total() uint64 {
	return v.total.Load()
}
