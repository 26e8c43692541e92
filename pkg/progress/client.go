package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/packarr/packarr/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin enforcement happens at the reverse proxy
		return true
	},
}

// Upgrader returns the websocket upgrader used for observer connections
func Upgrader() websocket.Upgrader {
	return upgrader
}

// Client is one live observer connection for a user
type Client struct {
	hub    Hub
	conn   *websocket.Conn
	send   chan Event
	userID string
}

// NewClient wraps an upgraded connection for the given user
func NewClient(hub Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan Event, 256),
		userID: userID,
	}
}

// StartPumps registers the client and starts its read and write loops
func (c *Client) StartPumps(ctx context.Context) {
	c.hub.RegisterClient(c)
	go c.writePump(ctx)
	go c.readPump(ctx)
}

// inbound is the only message shape observers are allowed to send
type inbound struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *Client) readPump(ctx context.Context) {
	log := logger.FromCtx(ctx)

	defer func() {
		c.hub.UnregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Debugw("observer read failed", "user", c.userID, "error", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			continue
		}

		if in.Type == EventTypePing {
			// application-level liveness probe, echo the timestamp back
			select {
			case c.send <- Pong{Type: EventTypePong, Timestamp: in.Timestamp}:
			default:
			}
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	log := logger.FromCtx(ctx)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				log.Debugw("observer write failed", "user", c.userID, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			return
		}
	}
}
