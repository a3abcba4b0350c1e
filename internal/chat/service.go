package chat

import (
	"errors"
	"strings"

	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/user"
)

var (
	ErrEmptyMessage   = errors.New("message content is required")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
	ErrForbiddenRoom  = errors.New("cannot access another customer's chat")
)

const (
	historyLimit     = 50
	maxMessageLength = 1000
)

// Directory resolves a user id to a display name for outgoing messages.
type Directory interface {
	GetByID(id int) (user.User, error)
}

type Service struct {
	repo  Repository
	hub   *Hub
	users Directory
}

func NewService(repo Repository, hub *Hub, users Directory) *Service {
	return &Service{repo: repo, hub: hub, users: users}
}

// resolveRoom pins customers to their own room; admins may address any
// room. A zero room for an admin means their own (rarely useful, but
// harmless).
func resolveRoom(p auth.Principal, roomID int) (int, error) {
	if p.IsAdmin() {
		if roomID == 0 {
			return p.UserID, nil
		}
		return roomID, nil
	}
	if roomID != 0 && roomID != p.UserID {
		return 0, ErrForbiddenRoom
	}
	return p.UserID, nil
}

func (s *Service) History(p auth.Principal, roomID int) ([]Message, error) {
	room, err := resolveRoom(p, roomID)
	if err != nil {
		return nil, err
	}
	return s.repo.History(room, historyLimit)
}

// Post persists the message, then broadcasts it to the room. Persistence
// comes first so a hub hiccup never loses history.
func (s *Service) Post(p auth.Principal, roomID int, content string) (Message, error) {
	room, err := resolveRoom(p, roomID)
	if err != nil {
		return Message{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}
	if len(content) > maxMessageLength {
		return Message{}, ErrMessageTooLong
	}

	senderName := p.Email
	if u, err := s.users.GetByID(p.UserID); err == nil && u.Name != "" {
		senderName = u.Name
	}

	saved, err := s.repo.Save(Message{
		RoomID:     room,
		UserID:     p.UserID,
		SenderName: senderName,
		SenderRole: p.Role,
		Content:    content,
	})
	if err != nil {
		return Message{}, err
	}

	s.hub.Broadcast(saved)
	return saved, nil
}
