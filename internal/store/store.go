package store

import (
	"errors"

	"github.com/jfields/huddle/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (duplicate email, duplicate direct-chat pair).
	ErrDuplicate = errors.New("duplicate record")
)

type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	SearchUsers(keyword string) ([]models.User, error)

	// Chat operations
	FindDirectChat(userA, userB int) (int, error)
	CreateDirectChat(userA, userB int) (int, error)
	CreateGroupChat(name string, adminID int, memberIDs []int) (int, error)
	GetChat(chatID int) (*models.Chat, error)
	GetUserChats(userID int) ([]models.Chat, error)
	RenameChat(chatID int, name string) error
	AddParticipant(chatID, userID int) error
	RemoveParticipant(chatID, userID int) error
	IsParticipant(chatID, userID int) (bool, error)

	// Message operations
	SaveMessage(chatID, senderID int, content string) (int, error)
	GetMessage(messageID int) (*models.Message, error)
	GetChatMessages(chatID int) ([]models.Message, error)
	SetLatestMessage(chatID, messageID int) error
}
