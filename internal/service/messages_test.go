package service

import (
	"errors"
	"testing"

	"github.com/jfields/huddle/internal/store/sqlstore"
)

func newMessageFixture(t *testing.T) (*MessageService, *ChatService) {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return &MessageService{Store: s}, &ChatService{Store: s}
}

func TestSendUpdatesLatestMessage(t *testing.T) {
	messages, chats := newMessageFixture(t)
	alice := addUser(t, chats, "Alice", "alice@example.com")
	bob := addUser(t, chats, "Bob", "bob@example.com")
	chat, _ := chats.AccessChat(alice.ID, bob.ID)

	message, err := messages.Send("hi", chat.ID, alice.ID)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if message.Sender == nil || message.Sender.ID != alice.ID {
		t.Errorf("Expected sender expanded, got %+v", message.Sender)
	}
	if message.Chat == nil || len(message.Chat.Users) != 2 {
		t.Errorf("Expected chat expanded with participants, got %+v", message.Chat)
	}

	refetched, _ := chats.AccessChat(alice.ID, bob.ID)
	if refetched.LatestMessage == nil || refetched.LatestMessage.ID != message.ID {
		t.Errorf("Expected latest message %d, got %+v", message.ID, refetched.LatestMessage)
	}

	list, err := messages.List(chat.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != message.ID {
		t.Errorf("Expected the sent message in the list, got %v", list)
	}
}

func TestSendValidation(t *testing.T) {
	messages, chats := newMessageFixture(t)
	alice := addUser(t, chats, "Alice", "alice@example.com")
	bob := addUser(t, chats, "Bob", "bob@example.com")
	chat, _ := chats.AccessChat(alice.ID, bob.ID)

	if _, err := messages.Send("", chat.ID, alice.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty content, got %v", err)
	}
	if _, err := messages.Send("hi", 0, alice.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for missing chat id, got %v", err)
	}
}

func TestSendRejectsNonParticipant(t *testing.T) {
	messages, chats := newMessageFixture(t)
	alice := addUser(t, chats, "Alice", "alice@example.com")
	bob := addUser(t, chats, "Bob", "bob@example.com")
	eve := addUser(t, chats, "Eve", "eve@example.com")
	chat, _ := chats.AccessChat(alice.ID, bob.ID)

	_, err := messages.Send("hi", chat.ID, eve.ID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for non-participant sender, got %v", err)
	}
}

func TestListEmptyChat(t *testing.T) {
	messages, chats := newMessageFixture(t)
	alice := addUser(t, chats, "Alice", "alice@example.com")
	bob := addUser(t, chats, "Bob", "bob@example.com")
	chat, _ := chats.AccessChat(alice.ID, bob.ID)

	list, err := messages.List(chat.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no messages, got %d", len(list))
	}
}
