// Package network provides the spectator-facing WebSocket feed and the
// press-archive replay API. It only reads from the wire log; game
// commands never enter through this package.
package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mcortes/CampaignManager2026/server/internal/events"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/logger"
	"github.com/mcortes/CampaignManager2026/server/internal/platform/metrics"
)

// Hub maintains the set of active spectator clients and broadcasts wire
// records to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New spectator connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("Spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage()
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastRecord serializes a wire record to JSON and sends it to all
// connected spectators.
func (h *Hub) BroadcastRecord(record events.Record) {
	payload, err := json.Marshal(record)
	if err != nil {
		metrics.Get().RecordWSError()
		h.logger.Error("Failed to serialize wire record for broadcast: " + err.Error())
		return
	}
	h.broadcast <- payload
}

// StartRecordPoller spawns a goroutine that polls the wire log and
// pushes new records to the Hub. The Hub runs independently from the
// engine's turn loop while picking up the same records.
func (h *Hub) StartRecordPoller(ctx context.Context, log *events.Log) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastSent := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				records := log.Replay()
				if len(records) > lastSent {
					for _, r := range records[lastSent:] {
						h.BroadcastRecord(r)
					}
					lastSent = len(records)
				}
			}
		}
	}()
}
