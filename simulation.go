package main

import (
	"context"
	"log"
	"time"

	"driftstation/server/atmos"
	loggingatmos "driftstation/server/logging/atmos"
	"driftstation/server/world"
)

// RunSimulation drives the fixed-rate tick loop until stop closes. Each
// tick first applies queued tile-change commands, which serialises all
// graph mutation onto this goroutine, then forwards every boundary node to
// the vent stepper.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	interval := time.Second / time.Duration(h.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.step(interval)
		}
	}
}

// step runs exactly one simulation tick.
func (h *Hub) step(budget time.Duration) {
	tick := h.tick.Add(1)
	started := time.Now()

	for _, cmd := range h.drainCommands() {
		h.applyCommand(tick, cmd)
	}

	stepped := 0
	crossEdges := 0
	for _, sys := range h.world.Systems() {
		stepped += sys.Tick(h.vent)
		crossEdges += sys.CrossGridEdges()
	}

	duration := time.Since(started)
	h.telemetry.RecordTick(duration, stepped)
	h.telemetry.RecordCrossGridEdges(crossEdges)
	if duration > budget {
		loggingatmos.TickBudgetOverrun(context.Background(), h.pub, tick, loggingatmos.TickBudgetOverrunPayload{
			DurationMillis: duration.Milliseconds(),
			BudgetMillis:   budget.Milliseconds(),
			Ratio:          float64(duration) / float64(budget),
		})
	}

	h.broadcastState(h.stateSnapshot())
}

// applyCommand mutates one tile and re-evaluates the affected node. Unknown
// subgrids and no-op commands are dropped with a log line; a malformed
// client message must never stall the loop.
func (h *Hub) applyCommand(tick uint64, cmd tileCommand) {
	sub, ok := h.world.SubgridByName(cmd.Subgrid)
	if !ok {
		log.Printf("dropping %s for unknown subgrid %q", cmd.Type, cmd.Subgrid)
		return
	}
	sys, ok := h.world.SystemFor(sub.ID())
	if !ok {
		log.Printf("dropping %s: subgrid %q has no atmos system", cmd.Type, cmd.Subgrid)
		return
	}
	pos := atmos.Vec3{X: cmd.Pos[0], Y: cmd.Pos[1], Z: cmd.Pos[2]}
	if !sub.Bounds().Contains(pos) {
		log.Printf("dropping %s: position %v outside subgrid %q", cmd.Type, pos, cmd.Subgrid)
		return
	}

	switch cmd.Type {
	case commandToggleDoor:
		door, ok := sub.Door(pos)
		if !ok {
			log.Printf("dropping ToggleDoor: no door at %v in %q", pos, cmd.Subgrid)
			return
		}
		sub.SetDoorClosed(pos, !door.Closed)
	case commandBreachWall:
		if sub.Tile(pos) != world.TileWall {
			log.Printf("dropping BreachWall: no wall at %v in %q", pos, cmd.Subgrid)
			return
		}
		sub.SetTile(pos, world.TileFloor)
	case commandBuildWall:
		if sub.Tile(pos) == world.TileWall {
			return
		}
		sub.SetTile(pos, world.TileWall)
	default:
		log.Printf("unknown command type %q", cmd.Type)
		return
	}

	sys.UpdateAt(tick, pos)
	h.telemetry.IncrementReclassification()
}
