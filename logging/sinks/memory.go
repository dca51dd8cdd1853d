package sinks

import (
	"context"
	"sync"

	"driftstation/server/logging"
)

// MemorySink retains events in memory. Test-only convenience.
type MemorySink struct {
	mu     sync.Mutex
	events []logging.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(event logging.Event) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Close(context.Context) error {
	return nil
}

func (s *MemorySink) Events() []logging.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]logging.Event, len(s.events))
	copy(snapshot, s.events)
	return snapshot
}
