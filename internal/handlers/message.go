package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jfields/huddle/internal/middleware"
	"github.com/jfields/huddle/internal/service"
)

type MessageHandler struct {
	Messages *service.MessageService
}

type sendMessageRequest struct {
	Content string `json:"content"`
	ChatID  int    `json:"chatId"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	message, err := h.Messages.Send(req.Content, req.ChatID, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.Atoi(mux.Vars(r)["chatID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid chat id"})
		return
	}

	messages, err := h.Messages.List(chatID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
