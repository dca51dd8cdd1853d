package main

import (
	"testing"
	"time"
)

func TestTelemetryRecordTick(t *testing.T) {
	counters := newTelemetryCounters()
	counters.RecordTick(12*time.Millisecond, 3)
	counters.RecordTick(7*time.Millisecond, 2)
	counters.IncrementReclassification()
	counters.RecordCrossGridEdges(4)

	snap := counters.Snapshot()
	if snap.Ticks != 2 {
		t.Fatalf("ticks = %d, want 2", snap.Ticks)
	}
	if snap.TickDurationMillis != 7 {
		t.Fatalf("tick duration = %d, want last recorded value", snap.TickDurationMillis)
	}
	if snap.BoundaryCells != 2 {
		t.Fatalf("boundary cells = %d, want last recorded value", snap.BoundaryCells)
	}
	if snap.SteppedTotal != 5 {
		t.Fatalf("stepped total = %d, want 5", snap.SteppedTotal)
	}
	if snap.Reclassifications != 1 {
		t.Fatalf("reclassifications = %d, want 1", snap.Reclassifications)
	}
	if snap.CrossGridEdges != 4 {
		t.Fatalf("cross-grid edges = %d, want 4", snap.CrossGridEdges)
	}
}

func TestTelemetryClampsNegativeInputs(t *testing.T) {
	counters := newTelemetryCounters()
	counters.RecordTick(-time.Millisecond, -5)
	counters.RecordCrossGridEdges(-1)

	snap := counters.Snapshot()
	if snap.TickDurationMillis != 0 || snap.BoundaryCells != 0 || snap.SteppedTotal != 0 || snap.CrossGridEdges != 0 {
		t.Fatalf("negative inputs not clamped: %+v", snap)
	}
}
