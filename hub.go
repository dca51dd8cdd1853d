package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"driftstation/server/logging"
	"driftstation/server/world"
)

const writeWait = 10 * time.Second

// Hub owns the world, its atmospherics systems, the queued tile-change
// commands, and the live subscribers. Commands may be enqueued from any
// goroutine; they are applied on the simulation goroutine only, at the head
// of the next tick.
type Hub struct {
	mu          sync.Mutex
	cfg         serverConfig
	world       *world.World
	vent        *world.VentStepper
	telemetry   *telemetryCounters
	pub         logging.Publisher
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
	commands    []tileCommand
	tick        atomic.Uint64
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub(cfg serverConfig, w *world.World, pub logging.Publisher) *Hub {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &Hub{
		cfg:         cfg,
		world:       w,
		vent:        world.NewVentStepper(),
		telemetry:   newTelemetryCounters(),
		pub:         pub,
		subscribers: make(map[string]*subscriber),
	}
}

// commandType enumerates the supported tile-change commands.
type commandType string

const (
	commandToggleDoor commandType = "ToggleDoor"
	commandBreachWall commandType = "BreachWall"
	commandBuildWall  commandType = "BuildWall"
)

// tileCommand is a tile-change intent captured for processing on the next
// tick.
type tileCommand struct {
	Type    commandType
	Subgrid string
	Pos     [3]int
}

// EnqueueCommand queues a tile change for the next tick. Safe to call from
// subscriber read loops.
func (h *Hub) EnqueueCommand(cmd tileCommand) {
	h.mu.Lock()
	h.commands = append(h.commands, cmd)
	h.mu.Unlock()
}

func (h *Hub) drainCommands() []tileCommand {
	h.mu.Lock()
	commands := h.commands
	h.commands = nil
	h.mu.Unlock()
	return commands
}

// Subscribe registers a websocket connection and returns its subscriber
// handle.
func (h *Hub) Subscribe(conn *websocket.Conn) (string, *subscriber) {
	id := fmt.Sprintf("observer-%d", h.nextID.Add(1))
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()
	return id, sub
}

// Disconnect removes and closes a subscriber.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// Tick reports the current simulation frame.
func (h *Hub) Tick() uint64 {
	return h.tick.Load()
}

// stateSnapshot assembles the per-tick broadcast message.
func (h *Hub) stateSnapshot() stateMessage {
	boundary := 0
	statuses := make([]subgridStatus, 0, len(h.world.Systems()))
	for _, sys := range h.world.Systems() {
		sub, _ := h.world.Subgrid(sys.Grid())
		name := ""
		if sub != nil {
			name = sub.Name()
		}
		count := sys.Boundary().Len()
		boundary += count
		statuses = append(statuses, subgridStatus{
			Name:          name,
			Rooms:         sys.RoomCount(),
			BoundaryCells: count,
		})
	}
	return stateMessage{
		Type:          "state",
		Tick:          h.tick.Load(),
		ServerTime:    time.Now().UnixMilli(),
		BoundaryCells: boundary,
		VentedTotal:   h.vent.Total(),
		Subgrids:      statuses,
	}
}

func (h *Hub) broadcastState(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
		}
	}
}
