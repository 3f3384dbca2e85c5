// Package service implements the application logic between the HTTP
// handlers and the store: user registration and auth, the chat
// directory, and the message log.
package service

import "errors"

// Error taxonomy. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can map them to status codes with errors.Is while keeping a
// human-readable message.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
)
