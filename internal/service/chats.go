package service

import (
	"errors"
	"fmt"

	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/store"
)

// ChatService is the chat directory: it owns direct-chat deduplication
// and group membership maintenance.
type ChatService struct {
	Store store.Store
}

// AccessChat returns the direct chat between the requester and the
// target, creating it on first contact. Repeated calls for the same
// pair always resolve to the same chat: creation races on the pair's
// uniqueness constraint and falls back to a refetch when it loses.
func (s *ChatService) AccessChat(requesterID, targetID int) (*models.Chat, error) {
	if targetID == 0 {
		return nil, fmt.Errorf("%w: no user id provided", ErrInvalidInput)
	}
	if targetID == requesterID {
		return nil, fmt.Errorf("%w: cannot open a chat with yourself", ErrInvalidInput)
	}

	chatID, err := s.Store.FindDirectChat(requesterID, targetID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		chatID, err = s.Store.CreateDirectChat(requesterID, targetID)
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race: the chat exists now, use it.
			chatID, err = s.Store.FindDirectChat(requesterID, targetID)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: creating chat: %v", ErrPersistence, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return s.expand(chatID)
}

// FetchChats returns every chat the user participates in, most recently
// updated first. An empty result is not an error.
func (s *ChatService) FetchChats(userID int) ([]models.Chat, error) {
	chats, err := s.Store.GetUserChats(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	return chats, nil
}

// CreateGroupChat creates a group with the given members plus the
// creator, who becomes the admin. The member list must hold at least
// two users before the creator is counted.
func (s *ChatService) CreateGroupChat(name string, memberIDs []int, creatorID int) (*models.Chat, error) {
	if name == "" || len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: please provide all the required fields", ErrInvalidInput)
	}
	if len(memberIDs) < 2 {
		return nil, fmt.Errorf("%w: a group chat needs at least two other users", ErrInvalidInput)
	}

	members := make([]int, 0, len(memberIDs)+1)
	members = append(members, memberIDs...)
	members = append(members, creatorID)

	chatID, err := s.Store.CreateGroupChat(name, creatorID, members)
	if err != nil {
		return nil, fmt.Errorf("%w: creating group chat: %v", ErrPersistence, err)
	}
	return s.expand(chatID)
}

func (s *ChatService) RenameGroupChat(chatID int, name string) (*models.Chat, error) {
	if chatID == 0 || name == "" {
		return nil, fmt.Errorf("%w: chat id and name are required", ErrInvalidInput)
	}
	if err := s.Store.RenameChat(chatID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return s.expand(chatID)
}

// AddParticipant adds the user to the chat. Adding an existing member
// is a no-op.
func (s *ChatService) AddParticipant(chatID, userID int) (*models.Chat, error) {
	if chatID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: chat id and user id are required", ErrInvalidInput)
	}
	if err := s.Store.AddParticipant(chatID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return s.expand(chatID)
}

// RemoveParticipant removes every occurrence of the user from the chat.
func (s *ChatService) RemoveParticipant(chatID, userID int) (*models.Chat, error) {
	if chatID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: chat id and user id are required", ErrInvalidInput)
	}
	if err := s.Store.RemoveParticipant(chatID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return s.expand(chatID)
}

func (s *ChatService) expand(chatID int) (*models.Chat, error) {
	chat, err := s.Store.GetChat(chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return chat, nil
}
