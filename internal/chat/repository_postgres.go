package chat

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	// Newest rows first from the index, then reversed so clients get
	// chronological order.
	historyQuery = `
        SELECT message_id, room_id, user_id, sender_name, sender_role, content, created_at
        FROM chat_messages
        WHERE room_id = $1
        ORDER BY message_id DESC
        LIMIT $2
    `
	insertMessageQuery = `
        INSERT INTO chat_messages (room_id, user_id, sender_name, sender_role, content, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING message_id, created_at
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) History(roomID, limit int) ([]Message, error) {
	rows, err := r.db.Query(historyQuery, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.MessageID, &m.RoomID, &m.UserID, &m.SenderName,
			&m.SenderRole, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *PostgresRepository) Save(m Message) (Message, error) {
	err := r.db.QueryRow(insertMessageQuery, m.RoomID, m.UserID, m.SenderName, m.SenderRole, m.Content).
		Scan(&m.MessageID, &m.CreatedAt)
	if err != nil {
		return Message{}, err
	}
	return m, nil
}
