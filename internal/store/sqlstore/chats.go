package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/store"
)

// pairKey identifies a direct chat by its unordered participant pair.
// The UNIQUE constraint on chats.pair_key is what prevents two
// concurrent find-or-create calls from producing duplicate direct chats.
func pairKey(userA, userB int) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%d:%d", userA, userB)
}

func (s *SQLStore) FindDirectChat(userA, userB int) (int, error) {
	var id int
	query := s.rebind("SELECT id FROM chats WHERE is_group = FALSE AND pair_key = ?")
	err := s.db.QueryRow(query, pairKey(userA, userB)).Scan(&id)
	if err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (s *SQLStore) CreateDirectChat(userA, userB int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var chatID int
	query := s.rebind("INSERT INTO chats (is_group, pair_key) VALUES (FALSE, ?) RETURNING id")
	if err := tx.QueryRow(query, pairKey(userA, userB)).Scan(&chatID); err != nil {
		return 0, mapErr(err)
	}

	insert := s.rebind("INSERT INTO participants (chat_id, user_id, position) VALUES (?, ?, ?)")
	for i, userID := range []int{userA, userB} {
		if _, err := tx.Exec(insert, chatID, userID, i); err != nil {
			return 0, mapErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapErr(err)
	}
	return chatID, nil
}

func (s *SQLStore) CreateGroupChat(name string, adminID int, memberIDs []int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var chatID int
	query := s.rebind("INSERT INTO chats (name, is_group, admin_id) VALUES (?, TRUE, ?) RETURNING id")
	if err := tx.QueryRow(query, name, adminID).Scan(&chatID); err != nil {
		return 0, mapErr(err)
	}

	insert := s.rebind("INSERT INTO participants (chat_id, user_id, position) VALUES (?, ?, ?) ON CONFLICT (chat_id, user_id) DO NOTHING")
	for i, userID := range memberIDs {
		if _, err := tx.Exec(insert, chatID, userID, i); err != nil {
			return 0, mapErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapErr(err)
	}
	return chatID, nil
}

// GetChat returns the chat with participants, group admin, and latest
// message (including its sender) expanded.
func (s *SQLStore) GetChat(chatID int) (*models.Chat, error) {
	var (
		chat     models.Chat
		name     string
		isGroup  bool
		adminID  sql.NullInt64
		latestID sql.NullInt64
	)
	query := s.rebind("SELECT id, name, is_group, admin_id, latest_message_id, created_at, updated_at FROM chats WHERE id = ?")
	err := s.db.QueryRow(query, chatID).
		Scan(&chat.ID, &name, &isGroup, &adminID, &latestID, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}

	chat.Users, err = s.chatParticipants(chatID)
	if err != nil {
		return nil, err
	}

	if isGroup {
		chat.Group = &models.GroupInfo{Name: name}
		if adminID.Valid {
			admin, err := s.GetUserByID(int(adminID.Int64))
			if err != nil {
				return nil, err
			}
			admin.Password = ""
			chat.Group.Admin = admin
		}
	}

	if latestID.Valid {
		latest, err := s.getMessageRow(int(latestID.Int64))
		if err != nil {
			return nil, err
		}
		chat.LatestMessage = latest
	}

	return &chat, nil
}

// GetUserChats returns every chat the user participates in, most
// recently updated first, each fully expanded.
func (s *SQLStore) GetUserChats(userID int) ([]models.Chat, error) {
	query := s.rebind(`
		SELECT c.id
		FROM chats c
		JOIN participants p ON c.id = p.chat_id
		WHERE p.user_id = ?
		ORDER BY c.updated_at DESC, c.id DESC
	`)
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	chats := make([]models.Chat, 0, len(ids))
	for _, id := range ids {
		chat, err := s.GetChat(id)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}
	return chats, nil
}

func (s *SQLStore) RenameChat(chatID int, name string) error {
	query := s.rebind("UPDATE chats SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	result, err := s.db.Exec(query, name, chatID)
	if err != nil {
		return mapErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *SQLStore) AddParticipant(chatID, userID int) error {
	if err := s.chatExists(chatID); err != nil {
		return err
	}

	var next int
	query := s.rebind("SELECT COALESCE(MAX(position)+1, 0) FROM participants WHERE chat_id = ?")
	if err := s.db.QueryRow(query, chatID).Scan(&next); err != nil {
		return mapErr(err)
	}

	// Repeated adds are a no-op thanks to the (chat_id, user_id) key.
	insert := s.rebind("INSERT INTO participants (chat_id, user_id, position) VALUES (?, ?, ?) ON CONFLICT (chat_id, user_id) DO NOTHING")
	if _, err := s.db.Exec(insert, chatID, userID, next); err != nil {
		return mapErr(err)
	}
	return s.touchChat(chatID)
}

func (s *SQLStore) RemoveParticipant(chatID, userID int) error {
	if err := s.chatExists(chatID); err != nil {
		return err
	}
	query := s.rebind("DELETE FROM participants WHERE chat_id = ? AND user_id = ?")
	if _, err := s.db.Exec(query, chatID, userID); err != nil {
		return mapErr(err)
	}
	return s.touchChat(chatID)
}

func (s *SQLStore) IsParticipant(chatID, userID int) (bool, error) {
	var exists bool
	query := s.rebind("SELECT EXISTS(SELECT 1 FROM participants WHERE chat_id = ? AND user_id = ?)")
	err := s.db.QueryRow(query, chatID, userID).Scan(&exists)
	return exists, mapErr(err)
}

func (s *SQLStore) chatExists(chatID int) error {
	var exists bool
	query := s.rebind("SELECT EXISTS(SELECT 1 FROM chats WHERE id = ?)")
	if err := s.db.QueryRow(query, chatID).Scan(&exists); err != nil {
		return mapErr(err)
	}
	if !exists {
		return store.ErrNotFound
	}
	return nil
}

func (s *SQLStore) touchChat(chatID int) error {
	query := s.rebind("UPDATE chats SET updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	_, err := s.db.Exec(query, chatID)
	return mapErr(err)
}

func (s *SQLStore) chatParticipants(chatID int) ([]models.User, error) {
	query := s.rebind(`
		SELECT u.id, u.name, u.email, u.picture, u.created_at, u.updated_at
		FROM users u
		JOIN participants p ON u.id = p.user_id
		WHERE p.chat_id = ?
		ORDER BY p.position
	`)
	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Picture, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
