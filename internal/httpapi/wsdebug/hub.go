// Package wsdebug streams chunk debug timings to connected websocket
// clients, one event per debug chunk request, using an upgrade /
// writer-loop / reader-goroutine shape per connection.
package wsdebug

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one chunk build's debug payload, broadcast to every connected
// client as it happens.
type Event struct {
	CX             int     `json:"cx"`
	CY             int     `json:"cy"`
	GenerationTime int64   `json:"generation_time"`
	Alpha          float64 `json:"alpha"`
	Beta           float64 `json:"beta"`
}

// Hub fans out Events to every connected websocket client. It never
// blocks a producer: a client too slow to drain its outbound queue misses
// the events that arrive while the queue is full, and stays connected.
type Hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}

	upgrader websocket.Upgrader
	log      *log.Logger
}

// NewHub constructs an empty Hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger,
	}
}

// Broadcast encodes ev and sends it to every currently connected client.
func (h *Hub) Broadcast(ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for out := range h.clients {
		select {
		case out <- b:
		default:
			// Client's queue is full; drop the event rather than block
			// the producer. The client is not told that it missed it.
		}
	}
}

// Handler upgrades the connection and streams Broadcast events to it
// until the client disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		out := make(chan []byte, 32)
		h.register(out)
		defer h.unregister(out)

		// Reader goroutine: only used to notice the client closing the
		// connection (debug clients never send anything meaningful).
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case b, ok := <-out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

func (h *Hub) register(out chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[out] = struct{}{}
}

func (h *Hub) unregister(out chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, out)
}
