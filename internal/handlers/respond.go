package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jfields/huddle/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeError maps the service error taxonomy to a status code and a
// {"message": ...} body. Unclassified errors become an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrPersistence):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		log.Printf("unhandled error: %v", err)
	}

	writeJSON(w, status, map[string]string{"message": message})
}
