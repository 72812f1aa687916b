package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID       uint
	UserRole string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

// Hub maintains the set of active dashboard clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %d disconnected", client.ID)

		case message := <-h.broadcast:
			// Write lock: stalled clients are dropped from the map here.
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast sends a message to every connected client
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// BroadcastToUser sends a message to a specific user
func (h *Hub) BroadcastToUser(userID uint, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastToRole sends a message to all users with a specific role
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.UserRole == role {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RentalChanged notifies dashboards that a rental was created or updated
type RentalChanged struct {
	RentalID      uint    `json:"rentalId"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   float64 `json:"totalAmount"`
}

// ApprovalRequested notifies admins about a pending price override
type ApprovalRequested struct {
	RentalID     uint    `json:"rentalId"`
	PendingTotal float64 `json:"pendingTotal"`
	RequestedBy  uint    `json:"requestedBy"`
}

// ScanCompleted notifies the uploading user that an OCR scan finished
type ScanCompleted struct {
	ScanID     string  `json:"scanId"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
}

// BroadcastRentalChanged pushes a rental change event to all dashboards
func BroadcastRentalChanged(hub *Hub, event RentalChanged) {
	message, err := json.Marshal(WebSocketMessage{Type: "rental_changed", Data: event})
	if err != nil {
		log.Printf("Error marshaling rental event: %v", err)
		return
	}
	hub.Broadcast(message)
}

// BroadcastApprovalRequested pushes a pending-approval event to admins and owners
func BroadcastApprovalRequested(hub *Hub, event ApprovalRequested) {
	message, err := json.Marshal(WebSocketMessage{Type: "approval_requested", Data: event})
	if err != nil {
		log.Printf("Error marshaling approval event: %v", err)
		return
	}
	hub.BroadcastToRole("admin", message)
	hub.BroadcastToRole("owner", message)
}

// NotifyScanCompleted pushes an OCR completion event to the uploading user
func NotifyScanCompleted(hub *Hub, userID uint, event ScanCompleted) {
	message, err := json.Marshal(WebSocketMessage{Type: "scan_completed", Data: event})
	if err != nil {
		log.Printf("Error marshaling scan event: %v", err)
		return
	}
	hub.BroadcastToUser(userID, message)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, userRole string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:       userID,
		UserRole: userRole,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var wsMessage WebSocketMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling WebSocket message: %v", err)
			continue
		}

		// Dashboard clients only listen; pings keep the connection alive
		if wsMessage.Type == "ping" {
			pong, _ := json.Marshal(WebSocketMessage{Type: "pong"})
			select {
			case c.Send <- pong:
			default:
			}
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}

	// Hub closed the channel
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
