package chat

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/hyejinmoon/fashion-shop-backend/internal/logger"
)

// client is one websocket connection pinned to a room. Admin connections
// receive traffic from every room.
type client struct {
	conn   *websocket.Conn
	roomID int
	admin  bool
}

// Hub fans chat messages out to the room's connections plus every admin
// connection. The client map is owned by the Run goroutine; connections
// only touch the channels.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Message
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message),
	}
}

// Run is the hub event loop. Start it once, before the websocket route
// accepts connections.
func (h *Hub) Run() {
	clients := make(map[*client]struct{})

	for {
		select {
		case cl := <-h.register:
			clients[cl] = struct{}{}
			logger.L().Debug("chat client connected",
				zap.Int("room", cl.roomID), zap.Int("clients", len(clients)))

		case cl := <-h.unregister:
			if _, ok := clients[cl]; ok {
				delete(clients, cl)
				cl.conn.Close()
			}
			logger.L().Debug("chat client disconnected", zap.Int("clients", len(clients)))

		case msg := <-h.broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.L().Error("marshal chat message", zap.Error(err))
				continue
			}
			for cl := range clients {
				if cl.roomID != msg.RoomID && !cl.admin {
					continue
				}
				if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					delete(clients, cl)
					cl.conn.Close()
				}
			}
		}
	}
}

// Broadcast queues a message for delivery to its room and to admins.
func (h *Hub) Broadcast(m Message) {
	h.broadcast <- m
}
