package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	defaultListenAddr = ":8080"
	defaultTickRate   = 15 // ticks per second
)

// serverConfig captures the runtime toggles for the simulation server.
type serverConfig struct {
	ListenAddr  string   `json:"listenAddr"`
	TickRate    int      `json:"tickRate"`
	StationPath string   `json:"stationPath"`
	LogSinks    []string `json:"logSinks"`
	LogJSONPath string   `json:"logJsonPath"`
}

// normalized returns a config with defaults applied.
func (cfg serverConfig) normalized() serverConfig {
	normalized := cfg
	normalized.ListenAddr = strings.TrimSpace(normalized.ListenAddr)
	if normalized.ListenAddr == "" {
		normalized.ListenAddr = defaultListenAddr
	}
	if normalized.TickRate <= 0 {
		normalized.TickRate = defaultTickRate
	}
	if len(normalized.LogSinks) == 0 {
		normalized.LogSinks = []string{"console"}
	}
	return normalized
}

func defaultServerConfig() serverConfig {
	return serverConfig{}.normalized()
}

func loadServerConfig(path string) (serverConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return serverConfig{}, fmt.Errorf("read server config: %w", err)
	}
	var cfg serverConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return serverConfig{}, fmt.Errorf("parse server config: %w", err)
	}
	return cfg.normalized(), nil
}
