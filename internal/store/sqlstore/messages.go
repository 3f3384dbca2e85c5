package sqlstore

import (
	"github.com/jfields/huddle/internal/models"
)

func (s *SQLStore) SaveMessage(chatID, senderID int, content string) (int, error) {
	var id int
	query := s.rebind("INSERT INTO messages (chat_id, sender_id, content) VALUES (?, ?, ?) RETURNING id")
	if err := s.db.QueryRow(query, chatID, senderID, content).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

// GetMessage returns the message with both its sender and its chat
// (participants included) expanded.
func (s *SQLStore) GetMessage(messageID int) (*models.Message, error) {
	message, err := s.getMessageRow(messageID)
	if err != nil {
		return nil, err
	}
	chat, err := s.GetChat(message.ChatID)
	if err != nil {
		return nil, err
	}
	message.Chat = chat
	return message, nil
}

// getMessageRow loads a message with its sender expanded but without
// the chat, which GetChat itself relies on for latest-message expansion.
func (s *SQLStore) getMessageRow(messageID int) (*models.Message, error) {
	var m models.Message
	var sender models.User
	query := s.rebind(`
		SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at,
		       u.id, u.name, u.email, u.picture
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.id = ?
	`)
	err := s.db.QueryRow(query, messageID).Scan(
		&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt,
		&sender.ID, &sender.Name, &sender.Email, &sender.Picture,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	m.Sender = &sender
	return &m, nil
}

// GetChatMessages returns the chat's messages in chronological order,
// each with its sender expanded.
func (s *SQLStore) GetChatMessages(chatID int) ([]models.Message, error) {
	query := s.rebind(`
		SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at,
		       u.id, u.name, u.email, u.picture
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.chat_id = ?
		ORDER BY m.created_at, m.id
	`)
	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var sender models.User
		err := rows.Scan(
			&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt,
			&sender.ID, &sender.Name, &sender.Email, &sender.Picture,
		)
		if err != nil {
			return nil, err
		}
		m.Sender = &sender
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLStore) SetLatestMessage(chatID, messageID int) error {
	query := s.rebind("UPDATE chats SET latest_message_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	_, err := s.db.Exec(query, messageID, chatID)
	return mapErr(err)
}
