package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/gridironlabs/playoff-system/playoffs"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the dashboard origin before exposing publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub *playoffs.Hub
}

func NewWebSocketHandler(hub *playoffs.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes one client to a dynasty's live playoff updates.
// Clients connect to /ws/dynasties/{dynastyID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	dynastyID, err := strconv.Atoi(chi.URLParam(r, "dynastyID"))
	if err != nil || dynastyID <= 0 {
		http.Error(w, "invalid dynastyID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade connection for dynasty %d: %v", dynastyID, err)
		return
	}

	client := &playoffs.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: playoffs.RoomForDynasty(dynastyID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
