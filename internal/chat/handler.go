package chat

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/logger"
)

type Handler struct {
	service   *Service
	hub       *Hub
	jwtSecret string
}

func NewHandler(service *Service, hub *Hub, jwtSecret string) *Handler {
	return &Handler{service: service, hub: hub, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/chat/history", h.history)
}

// RegisterWebsocketRoutes mounts the upgrade endpoint. Browsers cannot
// set Authorization headers on websocket requests, so the token rides
// in the query string and is verified before the upgrade.
func (h *Handler) RegisterWebsocketRoutes(app *fiber.App) {
	app.Get("/api/v1/chat/ws", h.upgrade, websocket.New(h.serveWS))
}

// history returns the caller's room. Admins may read any customer's room
// via ?room=<user id>.
func (h *Handler) history(c *fiber.Ctx) error {
	p, err := auth.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	messages, err := h.service.History(p, c.QueryInt("room"))
	if err != nil {
		if err == ErrForbiddenRoom {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load chat history"})
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *Handler) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	p, err := auth.ParseToken(c.Query("token"), h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	room, err := resolveRoom(p, c.QueryInt("room"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	}

	c.Locals("principal", p)
	c.Locals("room", room)
	return c.Next()
}

type inboundMessage struct {
	RoomID  int    `json:"room_id,omitempty"`
	Content string `json:"content"`
}

func (h *Handler) serveWS(conn *websocket.Conn) {
	p, ok := conn.Locals("principal").(auth.Principal)
	if !ok {
		conn.Close()
		return
	}
	room, _ := conn.Locals("room").(int)

	cl := &client{conn: conn, roomID: room, admin: p.IsAdmin()}
	h.hub.register <- cl
	defer func() { h.hub.unregister <- cl }()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var in inboundMessage
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		if in.RoomID == 0 {
			in.RoomID = room
		}

		if _, err := h.service.Post(p, in.RoomID, in.Content); err != nil {
			switch err {
			case ErrEmptyMessage, ErrMessageTooLong, ErrForbiddenRoom:
				continue
			default:
				logger.L().Error("post chat message",
					zap.Int("user_id", p.UserID), zap.Error(err))
			}
		}
	}
}
