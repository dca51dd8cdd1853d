package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

type telemetryCounters struct {
	ticks              atomic.Uint64
	tickDurationMillis atomic.Int64
	lastBoundaryCells  atomic.Uint64
	steppedTotal       atomic.Uint64
	reclassifications  atomic.Uint64
	crossGridEdges     atomic.Uint64
	debug              bool
}

type telemetrySnapshot struct {
	Ticks              uint64 `json:"ticks"`
	TickDurationMillis int64  `json:"tickDurationMillis"`
	BoundaryCells      uint64 `json:"boundaryCells"`
	SteppedTotal       uint64 `json:"steppedTotal"`
	Reclassifications  uint64 `json:"reclassifications"`
	CrossGridEdges     uint64 `json:"crossGridEdges"`
}

func newTelemetryCounters() *telemetryCounters {
	t := &telemetryCounters{}
	if os.Getenv("DEBUG_TELEMETRY") == "1" {
		t.debug = true
	}
	return t
}

func (t *telemetryCounters) RecordTick(duration time.Duration, boundaryCells int) {
	millis := duration.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	if boundaryCells < 0 {
		boundaryCells = 0
	}
	t.ticks.Add(1)
	t.tickDurationMillis.Store(millis)
	t.lastBoundaryCells.Store(uint64(boundaryCells))
	t.steppedTotal.Add(uint64(boundaryCells))
	if t.debug {
		fmt.Printf("[telemetry] tick=%d duration=%dms boundary=%d steppedTotal=%d\n",
			t.ticks.Load(), millis, boundaryCells, t.steppedTotal.Load())
	}
}

func (t *telemetryCounters) IncrementReclassification() {
	t.reclassifications.Add(1)
}

func (t *telemetryCounters) RecordCrossGridEdges(count int) {
	if count < 0 {
		count = 0
	}
	t.crossGridEdges.Store(uint64(count))
}

func (t *telemetryCounters) Snapshot() telemetrySnapshot {
	return telemetrySnapshot{
		Ticks:              t.ticks.Load(),
		TickDurationMillis: t.tickDurationMillis.Load(),
		BoundaryCells:      t.lastBoundaryCells.Load(),
		SteppedTotal:       t.steppedTotal.Load(),
		Reclassifications:  t.reclassifications.Load(),
		CrossGridEdges:     t.crossGridEdges.Load(),
	}
}
