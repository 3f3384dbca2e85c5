package handlers

import (
	"testing"
	"time"

	"github.com/jfields/huddle/internal/auth"
	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/service"
	"github.com/jfields/huddle/internal/store/sqlstore"
)

type fixture struct {
	store    *sqlstore.SQLStore
	tokens   *auth.Manager
	users    *UserHandler
	chats    *ChatHandler
	messages *MessageHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	tokens := auth.NewManager("test-secret", time.Hour)
	return &fixture{
		store:    s,
		tokens:   tokens,
		users:    &UserHandler{Users: &service.UserService{Store: s, Tokens: tokens}},
		chats:    &ChatHandler{Chats: &service.ChatService{Store: s}},
		messages: &MessageHandler{Messages: &service.MessageService{Store: s}},
	}
}

func (f *fixture) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash"}
	if err := f.store.CreateUser(user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

func (f *fixture) bearer(t *testing.T, userID int) string {
	t.Helper()
	token, err := f.tokens.Sign(userID)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return "Bearer " + token
}
