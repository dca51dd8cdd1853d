package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"driftstation/server/logging"
	"driftstation/server/logging/sinks"
	"driftstation/server/world"
)

func main() {
	var configPath, stationPath string
	flag.StringVar(&configPath, "config", "", "path to the server config JSON")
	flag.StringVar(&stationPath, "station", "", "path to the station layout JSON (overrides config)")
	flag.Parse()

	cfg := defaultServerConfig()
	if configPath != "" {
		loaded, err := loadServerConfig(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if stationPath != "" {
		cfg.StationPath = stationPath
	}

	router, err := buildLogRouter(cfg)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	station := world.DefaultStation()
	if cfg.StationPath != "" {
		station, err = world.LoadStation(cfg.StationPath)
		if err != nil {
			log.Fatalf("station: %v", err)
		}
	}

	w, err := world.BuildWorld(station, router)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	w.BuildAtmos(0)

	hub := newHub(cfg, w, router)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/diagnostics", func(rw http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status     string            `json:"status"`
			ServerTime int64             `json:"serverTime"`
			Tick       uint64            `json:"tick"`
			TickRate   int               `json:"tickRate"`
			Station    string            `json:"station"`
			Telemetry  telemetrySnapshot `json:"telemetry"`
			State      stateMessage      `json:"state"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Tick:       hub.Tick(),
			TickRate:   cfg.TickRate,
			Station:    station.Name,
			Telemetry:  hub.telemetry.Snapshot(),
			State:      hub.stateSnapshot(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(rw, "failed to encode", http.StatusInternalServerError)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		rw.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/ws", func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}

		id, sub := hub.Subscribe(conn)

		initial := hub.stateSnapshot()
		data, err := json.Marshal(initial)
		if err != nil {
			log.Printf("failed to marshal initial state for %s: %v", id, err)
			hub.Disconnect(id)
			return
		}

		sub.mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			hub.Disconnect(id)
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				hub.Disconnect(id)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.Printf("discarding malformed message from %s: %v", id, err)
				continue
			}

			switch msg.Type {
			case "toggleDoor":
				hub.EnqueueCommand(tileCommand{Type: commandToggleDoor, Subgrid: msg.Subgrid, Pos: [3]int{msg.X, msg.Y, msg.Z}})
			case "breachWall":
				hub.EnqueueCommand(tileCommand{Type: commandBreachWall, Subgrid: msg.Subgrid, Pos: [3]int{msg.X, msg.Y, msg.Z}})
			case "buildWall":
				hub.EnqueueCommand(tileCommand{Type: commandBuildWall, Subgrid: msg.Subgrid, Pos: [3]int{msg.X, msg.Y, msg.Z}})
			default:
				log.Printf("unknown message type %q from %s", msg.Type, id)
			}
		}
	})

	log.Printf("server listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// buildLogRouter assembles the logging router from the configured sinks.
func buildLogRouter(cfg serverConfig) (*logging.Router, error) {
	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = cfg.LogSinks
	logCfg.JSON.FilePath = cfg.LogJSONPath

	var named []logging.NamedSink
	if logCfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, logCfg.Console),
		})
	}
	if logCfg.HasSink("json") && logCfg.JSON.FilePath != "" {
		jsonSink, err := sinks.NewJSONSink(logCfg.JSON)
		if err != nil {
			return nil, err
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: jsonSink})
	}

	return logging.NewRouter(nil, logCfg, named)
}
