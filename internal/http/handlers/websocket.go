package handlers

import (
	"net/http"
	"sync"
	"time"

	"storefront/internal/services"
	"storefront/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketMessage represents a message sent through WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	ShopID    string      `json:"shop_id,omitempty"`
}

// WebSocketClient represents a client following one shop's status
type WebSocketClient struct {
	conn   *websocket.Conn
	shopID string
	send   chan WebSocketMessage
	hub    *WebSocketHub
}

// WebSocketHub manages all WebSocket connections
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan WebSocketMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	mu         sync.RWMutex
}

// WebSocketHandler streams shop status changes to connected clients
type WebSocketHandler struct {
	hub                 *WebSocketHub
	availabilityService *services.AvailabilityService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(availabilityService *services.AvailabilityService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan WebSocketMessage, 256),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}

	go hub.run()
	return &WebSocketHandler{
		hub:                 hub,
		availabilityService: availabilityService,
	}
}

var upgrader = websocket.Upgrader{
	// Shop status is public.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleShopStatus godoc
// @Summary Stream shop status changes
// @Description Upgrades to a WebSocket that receives the current status and every change after it
// @Tags availability
// @Param id path string true "Shop ID"
// @Success 101
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /ws/shops/{id} [get]
func (h *WebSocketHandler) HandleShopStatus(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	status, err := h.availabilityService.GetStatus(c.Request().Context(), shopID)
	if err != nil {
		return respondError(c, err, "Failed to evaluate shop availability")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := &WebSocketClient{
		conn:   conn,
		shopID: shopID.String(),
		send:   make(chan WebSocketMessage, 256),
		hub:    h.hub,
	}
	client.send <- statusMessage(status)

	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// BroadcastShopStatus sends a status change to every client following that shop
func (h *WebSocketHandler) BroadcastShopStatus(status *models.ShopStatus) {
	h.hub.broadcast <- statusMessage(status)
}

// GetConnectedClients returns the number of connected clients
func (h *WebSocketHandler) GetConnectedClients() int {
	h.hub.mu.RLock()
	defer h.hub.mu.RUnlock()
	return len(h.hub.clients)
}

func statusMessage(status *models.ShopStatus) WebSocketMessage {
	return WebSocketMessage{
		Type:      "shop_status",
		Data:      status,
		Timestamp: time.Now(),
		ShopID:    status.ShopID.String(),
	}
}

// run manages the WebSocket hub
func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.mu.Lock()
			hub.clients[client] = true
			hub.mu.Unlock()
			log.Debug().Str("shop_id", client.shopID).Msg("WebSocket client connected")

		case client := <-hub.unregister:
			hub.mu.Lock()
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.send)
				log.Debug().Str("shop_id", client.shopID).Msg("WebSocket client disconnected")
			}
			hub.mu.Unlock()

		case message := <-hub.broadcast:
			hub.mu.Lock()
			for client := range hub.clients {
				if client.shopID != message.ShopID {
					continue
				}
				select {
				case client.send <- message:
				default:
					// Slow consumer.
					close(client.send)
					delete(hub.clients, client)
				}
			}
			hub.mu.Unlock()
		}
	}
}

// readPump handles reading messages from the WebSocket
func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// 30s timeout since we ping every 20s
	c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	// The stream is one-way; reads only keep the deadline and close detection alive.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("shop_id", c.shopID).Msg("WebSocket read error")
			}
			return
		}
	}
}

// writePump handles writing messages to the WebSocket
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Warn().Err(err).Str("shop_id", c.shopID).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
