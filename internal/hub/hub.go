package hub

import (
	"encoding/json"

	"go.uber.org/zap"

	"staffboard/internal/store"
	"staffboard/prometheus"
)

// StateEvent is the single event kind sent over the push channel: the full
// roster snapshot, emitted immediately after connect and after every
// committed mutation.
type StateEvent struct {
	Type string `json:"type"`
	*store.Snapshot
}

// Hub owns the set of connected observers and fans snapshots out to them.
// All client-set mutations happen on the Run goroutine; the mutation path
// only ever sends on the broadcast channel, so a slow observer can never
// block a commit.
type Hub struct {
	store *store.Store
	log   *zap.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// New creates a hub over the given store.
func New(st *store.Store, log *zap.Logger) *Hub {
	return &Hub{
		store:      st,
		log:        log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
	}
}

// Run processes register/unregister/broadcast events until the channel loop
// is abandoned. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			prometheus.ObserversGauge.Set(float64(len(h.clients)))
			h.log.Info("observer connected", zap.Int("observers", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				prometheus.ObserversGauge.Set(float64(len(h.clients)))
				h.log.Info("observer disconnected", zap.Int("observers", len(h.clients)))
			}
		case message := <-h.broadcast:
			prometheus.BroadcastCounter.Inc()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client can't keep up; drop it. It gets a fresh
					// snapshot on reconnect.
					delete(h.clients, client)
					close(client.send)
					h.log.Warn("dropping slow observer")
				}
			}
			prometheus.ObserversGauge.Set(float64(len(h.clients)))
		}
	}
}

// BroadcastState reads a fresh snapshot and queues it for every connected
// observer. Delivery is best-effort; failures never surface to the caller's
// mutation path.
func (h *Hub) BroadcastState() {
	payload, err := h.stateMessage()
	if err != nil {
		h.log.Error("failed to build state broadcast", zap.Error(err))
		return
	}
	h.broadcast <- payload
}

func (h *Hub) stateMessage() ([]byte, error) {
	snap, err := h.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(StateEvent{Type: "state", Snapshot: snap})
}
