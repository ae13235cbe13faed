package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Envelope is the frame written to realtime clients.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type unicastMessage struct {
	userID  string
	message []byte
}

// Hub tracks connected notification-center clients per user and delivers
// newly stored notifications to them.
type Hub struct {
	// Registered clients, grouped by user.
	clients map[string]map[*Client]struct{}

	unicast    chan unicastMessage
	register   chan *Client
	unregister chan *Client

	stop     chan struct{}
	stopOnce sync.Once

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		unicast:    make(chan unicastMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.logger.Debug("websocket client registered", zap.String("user_id", client.userID), zap.Int("connections", len(set)))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.unicast:
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.message:
				default:
					// Slow consumer; drop the connection rather than block the hub.
					h.remove(client)
				}
			}

		case <-h.stop:
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			h.logger.Info("websocket hub stopped")
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug("websocket client unregistered", zap.String("user_id", client.userID))
}

// SendToUser delivers payload to every connection of userID as a
// "notification" event. Users without connections are ignored.
func (h *Hub) SendToUser(userID string, payload any) {
	message, err := json.Marshal(Envelope{Event: "notification", Data: payload})
	if err != nil {
		h.logger.Error("failed to encode realtime payload", zap.String("user_id", userID), zap.Error(err))
		return
	}

	select {
	case h.unicast <- unicastMessage{userID: userID, message: message}:
	case <-h.stop:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}
