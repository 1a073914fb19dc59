package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected WebSocket client
type Client struct {
	Hub  *Hub
	ID   uint
	Role string // "customer", "hall_manager", "service_provider" or "admin"
	Conn *websocket.Conn
	Send chan []byte
	mu   sync.Mutex
}

// Hub manages all WebSocket connections
type Hub struct {
	// Registered clients keyed by user ID
	Clients map[uint]*Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Message handlers
	MessageHandlers map[string]MessageHandler

	mu sync.RWMutex
}

// Message represents a booking event pushed to clients
type Message struct {
	Type       string      `json:"type"`
	BookingID  uint        `json:"booking_id,omitempty"`
	TrackingID string      `json:"tracking_id,omitempty"`
	Status     string      `json:"status,omitempty"`
	SenderID   uint        `json:"sender_id,omitempty"`
	SenderRole string      `json:"sender_role,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// MessageHandler handles different types of messages
type MessageHandler func(*Client, *Message) error

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	hub := &Hub{
		Clients:         make(map[uint]*Client),
		Broadcast:       make(chan *Message),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		MessageHandlers: make(map[string]MessageHandler),
	}

	hub.MessageHandlers["ping"] = hub.handlePing

	return hub
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: ID=%d, Role=%s", client.ID, client.Role)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: ID=%d, Role=%s", client.ID, client.Role)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// broadcastMessage sends a message to all connected clients
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.Clients, id)
		}
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID uint, message *Message) {
	h.mu.RLock()
	client, exists := h.Clients[userID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ User %d's send buffer is full", userID)
	}
}

// SendToRole sends a message to every connected client holding a role
func (h *Hub) SendToRole(role string, message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	for userID, client := range h.Clients {
		if client.Role != role {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("⚠️ User %d's send buffer is full", userID)
		}
	}
}

// GetConnectedUsers returns a list of currently connected user IDs
func (h *Hub) GetConnectedUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.Clients))
	for userID := range h.Clients {
		users = append(users, userID)
	}
	return users
}

// IsUserConnected checks if a user is currently connected
func (h *Hub) IsUserConnected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.Clients[userID]
	return exists
}

// handlePing handles ping messages for connection health
func (h *Hub) handlePing(client *Client, message *Message) error {
	pong := &Message{
		Type:      "pong",
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(pong)
	if err != nil {
		return err
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Could not send pong to user %d", client.ID)
	}

	return nil
}
