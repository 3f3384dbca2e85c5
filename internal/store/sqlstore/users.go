package sqlstore

import (
	"strings"

	"github.com/jfields/huddle/internal/models"
)

func (s *SQLStore) CreateUser(user *models.User) error {
	query := s.rebind("INSERT INTO users (name, email, password, picture) VALUES (?, ?, ?, ?) RETURNING id")
	if err := s.db.QueryRow(query, user.Name, user.Email, user.Password, user.Picture).Scan(&user.ID); err != nil {
		return mapErr(err)
	}
	created, err := s.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *SQLStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := s.rebind("SELECT id, name, email, password, picture, created_at, updated_at FROM users WHERE email = ?")
	err := s.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Picture, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *SQLStore) GetUserByID(id int) (*models.User, error) {
	var user models.User
	query := s.rebind("SELECT id, name, email, password, picture, created_at, updated_at FROM users WHERE id = ?")
	err := s.db.QueryRow(query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Picture, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

// SearchUsers matches the keyword case-insensitively against name or
// email. An empty keyword matches every user.
func (s *SQLStore) SearchUsers(keyword string) ([]models.User, error) {
	query := s.rebind(`
		SELECT id, name, email, picture, created_at, updated_at
		FROM users
		WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?
		ORDER BY id
	`)
	pattern := "%" + strings.ToLower(keyword) + "%"
	rows, err := s.db.Query(query, pattern, pattern)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Picture, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
