package sqlstore

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jfields/huddle/internal/models"
)

var testStore *SQLStore

func SetupTestDB(t *testing.T) {
	var err error
	testStore, err = New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
}

func TeardownTestDB() {
	testStore.db.Close()
}

func seedUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash", Picture: models.DefaultPicture}
	if err := testStore.CreateUser(user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}
