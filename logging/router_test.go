package logging_test

import (
	"context"
	"testing"
	"time"

	"driftstation/server/logging"
	"driftstation/server/logging/sinks"
)

func newMemoryRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	mem := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: mem}})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		router.Close(ctx)
	})
	return router, mem
}

func waitForEvents(t *testing.T, mem *sinks.MemorySink, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := mem.Events(); len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", want, len(mem.Events()))
	return nil
}

func TestRouterDeliversToSink(t *testing.T) {
	router, mem := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{
		Type:     "atmos.cellUpdated",
		Tick:     7,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryAtmos,
	})

	events := waitForEvents(t, mem, 1)
	if events[0].Type != "atmos.cellUpdated" || events[0].Tick != 7 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("router must stamp event time")
	}
	if got := router.Stats().EventsTotal; got != 1 {
		t.Fatalf("events total = %d, want 1", got)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, mem := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "quiet", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "loud", Severity: logging.SeverityError})

	events := waitForEvents(t, mem, 1)
	if len(events) != 1 || events[0].Type != "loud" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	router, mem := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "typed", Severity: logging.SeverityInfo})

	events := waitForEvents(t, mem, 1)
	if len(events) != 1 || events[0].Type != "typed" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestRouterAttachesSharedFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"station": "driftstation", "keep": "router"}
	router, mem := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{
		Type:     "tagged",
		Severity: logging.SeverityInfo,
		Extra:    map[string]any{"keep": "event"},
	})

	events := waitForEvents(t, mem, 1)
	if events[0].Extra["station"] != "driftstation" {
		t.Fatalf("shared field missing: %+v", events[0].Extra)
	}
	// Event-local values win over router fields.
	if events[0].Extra["keep"] != "event" {
		t.Fatalf("event field clobbered: %+v", events[0].Extra)
	}
}

func TestRouterCloseStopsPublishing(t *testing.T) {
	router, mem := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Type: "before", Severity: logging.SeverityInfo})
	waitForEvents(t, mem, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	router.Publish(context.Background(), logging.Event{Type: "after", Severity: logging.SeverityInfo})
	time.Sleep(20 * time.Millisecond)
	if got := len(mem.Events()); got != 1 {
		t.Fatalf("events after close = %d, want 1", got)
	}
}

func TestRouterSinkLookup(t *testing.T) {
	router, mem := newMemoryRouter(t, logging.DefaultConfig())
	if router.Sink("memory") != mem {
		t.Fatalf("sink lookup by name failed")
	}
	if router.Sink("absent") != nil {
		t.Fatalf("unknown sink name must return nil")
	}
}
