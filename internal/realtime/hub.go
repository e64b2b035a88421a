// Package realtime pushes posting events to connected dashboard clients over
// websockets. Delivery is best-effort: a slow client is dropped, never waited on.
package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients carry the JWT in the query string, not headers, so
	// origin checking is left to the CORS layer in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is the wire shape of a broadcast message.
type event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans posting events out to all connected clients.
type Hub struct {
	logger     *slog.Logger
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new Hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
	}
}

// Run owns the client set. All membership changes go through this loop, so no
// locking is needed anywhere else.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Client cannot keep up; drop it.
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Close stops the run loop and disconnects all clients.
func (h *Hub) Close() {
	close(h.done)
}

// EmitNewTransaction broadcasts a freshly committed posting.
func (h *Hub) EmitNewTransaction(txn *domain.Transaction) {
	payload, err := json.Marshal(event{Type: "transaction.created", Payload: dto.ToTransactionResponse(txn)})
	if err != nil {
		h.logger.Error("Failed to marshal broadcast event", slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Broadcast channel full, dropping event",
			slog.String("transaction_id", txn.TransactionID))
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and attaches it
// to the hub.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

// readPump discards inbound frames; the stream is push-only. It exists to
// process pongs and to detect closed connections.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards broadcast messages to the connection and keeps it alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
