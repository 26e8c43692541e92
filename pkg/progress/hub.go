package progress

import (
	"context"

	"github.com/packarr/packarr/pkg/logger"
)

// Hub fans events out to the live observer connections of each user.
// Events are not buffered or replayed: an observer connecting mid-job only
// sees events from that point forward.
type Hub interface {
	Run(ctx context.Context)
	Publish(userID string, event Event)
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
}

type envelope struct {
	userID string
	event  Event
}

type hub struct {
	// observer connections keyed by user id
	clients map[string]map[*Client]bool

	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client

	// closed when Run returns so registry calls made after shutdown
	// don't block on channels nobody reads anymore
	done chan struct{}
}

// NewHub creates an unstarted hub. Call Run before publishing.
func NewHub() Hub {
	return &hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client registry until the context is cancelled.
// All registry mutation happens on this goroutine.
func (h *hub) Run(ctx context.Context) {
	log := logger.FromCtx(ctx)

	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			close(h.done)
			return

		case client := <-h.register:
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			log.Debugw("observer connected", "user", client.userID)

		case client := <-h.unregister:
			clients, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, ok := clients[client]; ok {
				delete(clients, client)
				close(client.send)
				if len(clients) == 0 {
					delete(h.clients, client.userID)
				}
			}
			log.Debugw("observer disconnected", "user", client.userID)

		case msg := <-h.broadcast:
			clients, ok := h.clients[msg.userID]
			if !ok {
				// publishing without observers is a no-op
				continue
			}
			for client := range clients {
				select {
				case client.send <- msg.event:
				default:
					// a client that can't keep up is dropped rather than
					// blocking delivery to the others
					close(client.send)
					delete(clients, client)
				}
			}
			if len(clients) == 0 {
				delete(h.clients, msg.userID)
			}
		}
	}
}

// Publish delivers an event to every connected observer of the user.
// It never blocks; if the hub is saturated the event is dropped.
func (h *hub) Publish(userID string, event Event) {
	select {
	case h.broadcast <- envelope{userID: userID, event: event}:
	default:
		logger.Get().Warnw("hub broadcast channel full, dropping event", "user", userID, "type", event.EventType())
	}
}

// RegisterClient adds an observer connection to the hub
func (h *hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// UnregisterClient removes an observer connection from the hub
func (h *hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
