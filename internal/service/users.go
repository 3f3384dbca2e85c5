package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jfields/huddle/internal/auth"
	"github.com/jfields/huddle/internal/models"
	"github.com/jfields/huddle/internal/store"
)

type UserService struct {
	Store  store.Store
	Tokens *auth.Manager
}

// Register creates a user with a bcrypt-hashed password and returns the
// user together with a fresh bearer token.
func (s *UserService) Register(name, email, password, picture string) (*models.AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	if _, err := s.Store.GetUserByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if picture == "" {
		picture = models.DefaultPicture
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Picture:  picture,
	}
	if err := s.Store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return s.respond(user)
}

// Authenticate verifies the credentials and returns the user with a
// fresh bearer token.
func (s *UserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	user, err := s.Store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.respond(user)
}

// Search returns users whose name or email matches the keyword. An
// empty keyword returns every user.
func (s *UserService) Search(keyword string) ([]models.User, error) {
	users, err := s.Store.SearchUsers(keyword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.Tokens.Sign(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: signing token: %v", ErrPersistence, err)
	}
	out := *user
	out.Password = ""
	return &models.AuthResponse{User: out, Token: token}, nil
}
