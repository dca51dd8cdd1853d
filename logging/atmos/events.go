// Package atmos publishes structured events for the atmospherics metadata
// graph: subgrid classification sweeps and incremental cell updates.
package atmos

import (
	"context"

	"driftstation/server/logging"
)

const (
	// EventSubgridClassified is emitted after a full classification sweep
	// of one subgrid completes.
	EventSubgridClassified logging.EventType = "atmos.subgrid_classified"
	// EventCellUpdated is emitted after an incremental single-cell
	// re-evaluation.
	EventCellUpdated logging.EventType = "atmos.cell_updated"
	// EventTickBudgetOverrun is emitted when a simulation tick exceeds
	// the tick interval.
	EventTickBudgetOverrun logging.EventType = "atmos.tick_budget_overrun"
)

// SubgridClassifiedPayload captures the outcome of a full sweep.
type SubgridClassifiedPayload struct {
	Subgrid        string `json:"subgrid"`
	Rooms          int    `json:"rooms"`
	SpaceNodes     int    `json:"spaceNodes"`
	BoundaryNodes  int    `json:"boundaryNodes"`
	DurationMillis int64  `json:"durationMillis"`
}

// SubgridClassified publishes the completion of a classification sweep.
func SubgridClassified(ctx context.Context, pub logging.Publisher, tick uint64, payload SubgridClassifiedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSubgridClassified,
		Tick:     tick,
		Source:   logging.SourceRef{ID: payload.Subgrid, Kind: logging.SourceKindSubgrid},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryAtmos,
		Payload:  payload,
	})
}

// CellUpdatedPayload captures the state of a node after reclassification.
type CellUpdatedPayload struct {
	Subgrid         string `json:"subgrid"`
	X               int    `json:"x"`
	Y               int    `json:"y"`
	Z               int    `json:"z"`
	Type            string `json:"type"`
	RoomNumber      int    `json:"roomNumber"`
	IsClosedAirlock bool   `json:"isClosedAirlock"`
	Neighbors       int    `json:"neighbors"`
	Boundary        bool   `json:"boundary"`
}

// CellUpdated publishes one incremental node re-evaluation.
func CellUpdated(ctx context.Context, pub logging.Publisher, tick uint64, payload CellUpdatedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCellUpdated,
		Tick:     tick,
		Source:   logging.SourceRef{ID: payload.Subgrid, Kind: logging.SourceKindSubgrid},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAtmos,
		Payload:  payload,
	})
}

// TickBudgetOverrunPayload captures timing details for a tick that ran
// longer than its interval.
type TickBudgetOverrunPayload struct {
	DurationMillis int64   `json:"durationMillis"`
	BudgetMillis   int64   `json:"budgetMillis"`
	Ratio          float64 `json:"ratio"`
}

// TickBudgetOverrun publishes a warning that the simulation overran its
// tick budget.
func TickBudgetOverrun(ctx context.Context, pub logging.Publisher, tick uint64, payload TickBudgetOverrunPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickBudgetOverrun,
		Tick:     tick,
		Source:   logging.SourceRef{Kind: logging.SourceKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}
