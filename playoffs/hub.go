package playoffs

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Update types pushed to dynasty rooms.
const (
	UpdateSeedingCalculated = "SEEDING_CALCULATED"
	UpdateGameCompleted     = "GAME_COMPLETED"
	UpdateRoundAdvanced     = "ROUND_ADVANCED"
	UpdatePlayoffsCompleted = "PLAYOFFS_COMPLETED"
)

// UpdateMessage is the envelope broadcast to websocket clients.
type UpdateMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	DynastyID int         `json:"dynasty_id"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one websocket subscriber attached to a dynasty room.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	closed   bool
	closedMu sync.Mutex
}

// Hub fans playoff updates out to per-dynasty rooms.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms map[string]map[*Client]bool
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// RoomForDynasty names the hub room for one dynasty.
func RoomForDynasty(dynastyID int) string {
	return "dynasty_" + strconv.Itoa(dynastyID)
}

// Run owns the room maps; it must run in its own goroutine for the life of
// the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if clients[client] {
					client.markClosed()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToDynasty sends one update to every client in the dynasty's
// room. Slow clients are skipped rather than blocking the broadcast.
func (h *Hub) BroadcastToDynasty(dynastyID int, updateType string, payload interface{}) {
	message := UpdateMessage{Type: updateType, Payload: payload, DynastyID: dynastyID}
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("hub: failed to marshal %s update for dynasty %d: %v", updateType, dynastyID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[RoomForDynasty(dynastyID)] {
		if client.isClosed() {
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("hub: dropping %s update for a slow client in dynasty %d", updateType, dynastyID)
		}
	}
}

func (c *Client) markClosed() {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

func (c *Client) isClosed() bool {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	return c.closed
}

// ReadPump drains (and discards) client messages and drives disconnect
// detection through pong deadlines.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("hub: client in room %s closed unexpectedly: %v", c.Room, err)
			}
			return
		}
	}
}

// WritePump flushes queued updates to the client and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush anything already queued into the same frame batch.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
