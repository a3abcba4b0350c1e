package chat

// Message is one chat line in the support widget. Each customer has their
// own room, keyed by their user id; admin replies land in the customer's
// room and carry the admin role so clients can style them differently.
type Message struct {
	MessageID  int    `json:"message_id"`
	RoomID     int    `json:"room_id"`
	UserID     int    `json:"user_id"`
	SenderName string `json:"sender_name"`
	SenderRole string `json:"sender_role"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type Repository interface {
	History(roomID, limit int) ([]Message, error)
	Save(m Message) (Message, error)
}
