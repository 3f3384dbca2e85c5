package service

import (
	"errors"
	"fmt"

	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/store"
)

// MessageService is the message log.
type MessageService struct {
	Store store.Store
}

// Send persists a message, repoints the chat's latest-message reference
// to it, and returns it expanded with sender and chat. The sender must
// be a participant of the chat.
func (s *MessageService) Send(content string, chatID, senderID int) (*models.Message, error) {
	if content == "" || chatID == 0 {
		return nil, fmt.Errorf("%w: content and chat id are required", ErrInvalidInput)
	}

	member, err := s.Store.IsParticipant(chatID, senderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !member {
		return nil, fmt.Errorf("%w: sender is not a participant of chat %d", ErrUnauthorized, chatID)
	}

	messageID, err := s.Store.SaveMessage(chatID, senderID, content)
	if err != nil {
		return nil, fmt.Errorf("%w: saving message: %v", ErrPersistence, err)
	}
	if err := s.Store.SetLatestMessage(chatID, messageID); err != nil {
		return nil, fmt.Errorf("%w: updating latest message: %v", ErrPersistence, err)
	}

	message, err := s.Store.GetMessage(messageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return message, nil
}

// List returns the chat's messages in chronological order.
func (s *MessageService) List(chatID int) ([]models.Message, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}
	messages, err := s.Store.GetChatMessages(chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %d", ErrNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
