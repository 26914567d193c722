// Package websocket implements a WebSocket Hub for broadcasting live match updates.
// WebSockets are persistent two-way connections between the server and clients. Unlike
// regular HTTP, they let the server push data the moment it changes, so everyone
// following a match sees each score as soon as it is entered, without polling.
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/tournament"
)

// SendBuffer is how many messages may queue for one client before it is dropped.
const SendBuffer = 16

// Client represents a single connected WebSocket client following one match.
type Client struct {
	MatchID string      // Which match this client is watching; used to route messages
	Send    chan []byte // Buffered channel of outgoing messages; the socket writer drains it
}

// NewClient creates a client for a match with a buffered Send channel.
func NewClient(matchID string) *Client {
	return &Client{MatchID: matchID, Send: make(chan []byte, SendBuffer)}
}

// Message is a unit of data to broadcast to every client watching a match.
type Message struct {
	MatchID string
	Data    []byte
}

// Hub manages all active WebSocket connections, grouped by match id.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels, which keeps all map writes on a single goroutine.
type Hub struct {
	// clients is a nested map: matchID -> set of Client pointers.
	clients map[string]map[*Client]bool

	broadcast  chan *Message // Incoming messages to be sent to all clients watching a match
	register   chan *Client  // A new client has connected and should be tracked
	unregister chan *Client  // A client has disconnected and should be removed
	done       chan struct{} // Closed when Run returns

	// mu protects clients for readers outside the Run goroutine (ClientCount).
	mu  sync.RWMutex
	log *zap.Logger
}

// NewHub creates and initializes a Hub with empty channels and maps.
// The broadcast channel has a buffer of 256 so publishers don't block immediately
// if the Hub goroutine is briefly busy.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine ("go hub.Run(ctx)")
// and returns when ctx is cancelled, closing every client's Send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for matchID, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, matchID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients[msg.MatchID] {
				select {
				case client.Send <- msg.Data:
				// The client is not keeping up; drop it rather than stall everyone else.
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				h.log.Debug("dropping slow websocket client", zap.String("match_id", client.MatchID))
				h.remove(client)
			}
		}
	}
}

// remove deletes a client and closes its Send channel. Only called from Run.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.MatchID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send) // Signals the socket writer to stop
	if len(clients) == 0 {
		delete(h.clients, client.MatchID)
	}
}

// Broadcast sends raw data to every client watching the given match.
func (h *Hub) Broadcast(matchID string, data []byte) {
	select {
	case h.broadcast <- &Message{MatchID: matchID, Data: data}:
	case <-h.done:
	}
}

// Publish implements tournament.Notifier: it encodes the view and broadcasts it.
func (h *Hub) Publish(matchID string, view tournament.MatchView) {
	data, err := json.Marshal(view)
	if err != nil {
		h.log.Error("encoding match view", zap.String("match_id", matchID), zap.Error(err))
		return
	}
	h.Broadcast(matchID, data)
}

// Register adds a client to the Hub so it starts receiving broadcasts for its match.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the Hub when its WebSocket connection closes.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount reports how many clients are watching a match.
func (h *Hub) ClientCount(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[matchID])
}
