package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jfields/huddle/internal/middleware"
	"github.com/jfields/huddle/internal/service"
)

type ChatHandler struct {
	Chats *service.ChatService
}

type accessChatRequest struct {
	UserID int `json:"userId"`
}

type createGroupRequest struct {
	Name string `json:"name"`
	// Users is a JSON-encoded array of user ids, e.g. "[2,3]".
	Users string `json:"users"`
}

type renameGroupRequest struct {
	ChatID   int    `json:"chatId"`
	ChatName string `json:"chatName"`
}

type groupMemberRequest struct {
	ChatID int `json:"chatId"`
	UserID int `json:"userId"`
}

// AccessChat finds or creates the direct chat with the given user.
func (h *ChatHandler) AccessChat(w http.ResponseWriter, r *http.Request) {
	var req accessChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	chat, err := h.Chats.AccessChat(middleware.UserID(r), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) FetchChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.Chats.FetchChats(middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	var memberIDs []int
	if req.Users != "" {
		if err := json.Unmarshal([]byte(req.Users), &memberIDs); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "users must be a JSON array of ids"})
			return
		}
	}

	chat, err := h.Chats.CreateGroupChat(req.Name, memberIDs, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	var req renameGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	chat, err := h.Chats.RenameGroupChat(req.ChatID, req.ChatName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) AddToGroup(w http.ResponseWriter, r *http.Request) {
	var req groupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	chat, err := h.Chats.AddParticipant(req.ChatID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) RemoveFromGroup(w http.ResponseWriter, r *http.Request) {
	var req groupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	chat, err := h.Chats.RemoveParticipant(req.ChatID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}
