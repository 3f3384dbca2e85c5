package sqlstore

import (
	"errors"
	"testing"

	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/store"
)

func TestCreateUser(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	user := seedUser(t, "Alice", "alice@example.com")
	if user.ID == 0 {
		t.Error("Expected non-zero user ID")
	}

	// Duplicate email must be rejected
	dup := &models.User{Name: "Other Alice", Email: "alice@example.com", Password: "hash"}
	err := testStore.CreateUser(dup)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for duplicate email, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	seedUser(t, "Alice", "alice@example.com")

	user, err := testStore.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("Expected name 'Alice', got '%s'", user.Name)
	}

	_, err = testStore.GetUserByEmail("nobody@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestSearchUsers(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	seedUser(t, "Alice", "alice@example.com")
	seedUser(t, "Bob", "bob@example.com")
	seedUser(t, "Carol", "carol@other.org")

	users, err := testStore.SearchUsers("ALICE")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Errorf("Expected [Alice], got %v", users)
	}

	// Email matches too
	users, _ = testStore.SearchUsers("other.org")
	if len(users) != 1 || users[0].Name != "Carol" {
		t.Errorf("Expected [Carol], got %v", users)
	}

	// Empty keyword returns everyone
	users, _ = testStore.SearchUsers("")
	if len(users) != 3 {
		t.Errorf("Expected 3 users for empty keyword, got %d", len(users))
	}
}
