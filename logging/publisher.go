package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// SourceKind names what part of the simulation emitted an event.
type SourceKind string

const (
	SourceKindUnknown SourceKind = "unknown"
	SourceKindWorld   SourceKind = "world"
	SourceKindSubgrid SourceKind = "subgrid"
	SourceKindDoor    SourceKind = "door"
)

// SourceRef identifies the emitting entity.
type SourceRef struct {
	ID   string     `json:"id"`
	Kind SourceKind `json:"kind"`
}

// Event is one structured log record. Tick is the simulation frame the
// event belongs to, zero for events outside the tick loop.
type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Source   SourceRef      `json:"source"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

const (
	CategoryAtmos      = "atmos"
	CategorySimulation = "simulation"
	CategorySystem     = "system"
)

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

func NopPublisher() Publisher {
	return nopPublisher{}
}

func cloneEvent(event Event) Event {
	cloned := event
	if len(event.Extra) > 0 {
		extra := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			extra[k] = v
		}
		cloned.Extra = extra
	}
	return cloned
}
